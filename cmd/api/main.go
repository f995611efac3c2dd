package main

import (
	"io"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"openrouter-chat/internal/config"
	"openrouter-chat/internal/http"
	"openrouter-chat/internal/logging"
	"openrouter-chat/internal/openrouter"
	"openrouter-chat/internal/service"
	"openrouter-chat/internal/storage"
)

func main() {
	// Load configuration first; a missing API key aborts startup here,
	// before anything touches the network.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Two log sinks: today's file under the log dir and the console. A
	// file open failure degrades to console-only.
	sinks := []io.Writer{os.Stdout}
	logFile, err := logging.OpenLogFile(cfg.LogDir)
	if err != nil {
		log.Printf("Warning: could not open log file, logging to console only: %v", err)
	} else {
		defer func() {
			_ = logFile.Close()
		}()
		sinks = append(sinks, logFile)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat, sinks...)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat, "dir", cfg.LogDir)
	slog.Info("API logging system started")

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	callRepo := storage.NewCallRepo(db)

	// Create the OpenRouter client (external service layer)
	client := openrouter.NewClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel)

	chatService := service.NewChatService(client, callRepo, cfg.OpenRouterModel)

	deps := &http.Deps{
		ChatService: chatService,
		CallStore:   callRepo,
		DB:          db,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("OpenRouter configuration", "base_url", cfg.OpenRouterBaseURL, "model", cfg.OpenRouterModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
