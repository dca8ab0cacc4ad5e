// cmd/api/main.go
// Main entry point for the application
// This file loads configuration and runs the server until SIGINT or SIGTERM

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/config"
)

func main() {
	// 1. Load environment variables
	envErr := godotenv.Load()

	// 2. Load and validate configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting Rika Care API", "environment", cfg.Environment)
	if envErr != nil {
		log.Warn("no .env file found, using environment variables", "error", envErr)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Storage, services and routes
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", "error", err)
	}
	defer a.close()

	// 4. Serve until shutdown
	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		log.Fatal("failed to start server", "error", err)
	}
	if err := a.serve(ctx, ln); err != nil {
		log.Error("server exited with error", "error", err)
		return
	}
	log.Info("server exited gracefully")
}
