package llm

import (
	"github.com/sashabaranov/go-openai"

	"github.com/hmoraes/chatlite/internal/config"
)

// NewClient creates a chat-completion client for the configured upstream
// model. The base URL points at any OpenAI-compatible endpoint; with the
// defaults that is a local Ollama instance (/v1).
func NewClient(cfg config.LLMConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL

	return openai.NewClientWithConfig(clientConfig)
}
