package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/hmoraes/chatlite/internal/config"
	"github.com/hmoraes/chatlite/internal/llm"
	"github.com/hmoraes/chatlite/internal/logger"
	"github.com/hmoraes/chatlite/internal/middleware"
)

const systemPrompt = "You are a helpful assistant."

// Handler serves the inference endpoint: a health check and the single
// /chat route that forwards one user message to the upstream model.
type Handler struct {
	llmClient llm.Client
	cfg       config.LLMConfig
}

// New creates a handler backed by the given upstream model client.
func New(llmClient llm.Client, cfg config.LLMConfig) *Handler {
	return &Handler{llmClient: llmClient, cfg: cfg}
}

// Routes builds the router, CORS included.
func (h *Handler) Routes(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORS(allowedOrigins))
	r.Get("/", h.handleHealth)
	r.Post("/chat", h.handleChat)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"model":   h.cfg.Model,
		"llm_url": h.cfg.BaseURL,
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserMessage string `json:"user_message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reqID := uuid.NewString()
	logger.L.Info("chat request", "id", reqID, "model", h.cfg.Model)

	resp, err := h.llmClient.CreateChatCompletion(r.Context(), openai.ChatCompletionRequest{
		Model: h.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: payload.UserMessage},
		},
	})
	if err != nil {
		logger.L.Error("upstream model call failed", "id", reqID, "error", err)
		respondDetail(w, http.StatusServiceUnavailable, "model service unavailable")
		return
	}
	if len(resp.Choices) == 0 {
		logger.L.Error("upstream model returned no choices", "id", reqID)
		respondDetail(w, http.StatusBadGateway, "unexpected response from model service")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"bot_response": resp.Choices[0].Message.Content,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L.Error("failed to encode response", "error", err)
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}
