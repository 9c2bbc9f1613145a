package config

import (
	"os"
	"testing"
)

const sampleConfig = `
server:
  host: 127.0.0.1
  port: "9000"
  allowed_origins:
    - http://localhost:4000
llm:
  base_url: http://model-host:11434/v1
  api_key: dummy
  model: llama3
client:
  server_url: http://127.0.0.1:9000
history:
  path: /tmp/test-chat.db
log_level: debug
`

// TestLoad_File verifies that Load unmarshals a full config file named by CONFIG_PATH.
func TestLoad_File(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(sampleConfig); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	t.Setenv("CONFIG_PATH", tmp.Name())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != "9000" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:4000" {
		t.Fatalf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.LLM.Model != "llama3" {
		t.Fatalf("unexpected model: %s", cfg.LLM.Model)
	}
	if cfg.Client.ServerURL != "http://127.0.0.1:9000" {
		t.Fatalf("unexpected server_url: %s", cfg.Client.ServerURL)
	}
	if cfg.History.Path != "/tmp/test-chat.db" {
		t.Fatalf("unexpected history path: %s", cfg.History.Path)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

// TestLoad_Defaults verifies the binaries can run with no config file at all.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.Model != "qwen2.5" {
		t.Fatalf("unexpected default model: %s", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL != "http://localhost:11434/v1" {
		t.Fatalf("unexpected default base_url: %s", cfg.LLM.BaseURL)
	}
	if cfg.Server.Port != "8000" {
		t.Fatalf("unexpected default port: %s", cfg.Server.Port)
	}
	if cfg.Client.ServerURL != "http://localhost:8000" {
		t.Fatalf("unexpected default server_url: %s", cfg.Client.ServerURL)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Fatalf("unexpected default origins: %v", cfg.Server.AllowedOrigins)
	}
}
