package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hmoraes/chatlite/internal/backend"
	"github.com/hmoraes/chatlite/internal/config"
	"github.com/hmoraes/chatlite/internal/coordinator"
	"github.com/hmoraes/chatlite/internal/history"
	"github.com/hmoraes/chatlite/internal/logger"
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

	store := history.Open(cfg.History.Path)
	defer store.Close()

	transport := backend.NewClient(cfg.Client.ServerURL)
	coord := coordinator.New(transport, store)

	ctx := context.Background()

	for _, msg := range store.Load(ctx) {
		printMessage(msg)
	}

	fmt.Println(`Type a message and press enter. Commands: /clear, /quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit":
			return
		case "/clear":
			if err := coord.Clear(ctx); err != nil {
				logger.L.Error("failed to clear chat log", "error", err)
			}
			fmt.Println("(chat log cleared)")
			continue
		}

		seq, err := coord.Submit(ctx, line)
		if err != nil {
			if errors.Is(err, coordinator.ErrBusy) {
				fmt.Println("(still waiting on the previous message)")
			}
			continue
		}
		// Submit appends the user record and the settled reply; the reply is
		// the last record in the returned sequence.
		printMessage(seq[len(seq)-1])
	}
}

func printMessage(msg history.Message) {
	switch msg.Kind {
	case history.KindUser:
		fmt.Printf("you> %s\n", msg.Content)
	case history.KindBot:
		fmt.Printf("bot> %s\n", msg.Content)
	case history.KindError:
		fmt.Printf("err> %s\n", msg.Content)
	}
}
