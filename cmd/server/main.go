package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/hmoraes/chatlite/internal/config"
	"github.com/hmoraes/chatlite/internal/llm"
	"github.com/hmoraes/chatlite/internal/logger"
	"github.com/hmoraes/chatlite/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.L.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	llmClient := llm.NewClient(cfg.LLM)
	handler := server.New(llmClient, cfg.LLM)
	router := handler.Routes(cfg.Server.AllowedOrigins)

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting server", "address", serverAddr, "model", cfg.LLM.Model)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.L.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
