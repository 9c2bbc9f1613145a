package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			UserMessage string `json:"user_message"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "Hello", payload.UserMessage)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bot_response":"Hi there"}`))
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL).Send(context.Background(), "Hello")
	require.NoError(t, err)
	require.Equal(t, "Hi there", reply)
}

func TestSendNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Send(context.Background(), "Hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code: 500")
}

func TestSendEndpointUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // shut it down before the call

	_, err := NewClient(srv.URL).Send(context.Background(), "Hello")
	require.Error(t, err)
}

func TestSendMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Send(context.Background(), "Hello")
	require.Error(t, err)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat", r.URL.Path)
		w.Write([]byte(`{"bot_response":"ok"}`))
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL + "/").Send(context.Background(), "Hello")
	require.NoError(t, err)
	require.Equal(t, "ok", reply)
}
