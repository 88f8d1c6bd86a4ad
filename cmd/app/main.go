package main

import (
	"ProjectVision/internal/config"
	"ProjectVision/pkg/log"
	"ProjectVision/pkg/yolo"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()

	modelDir := os.Getenv("MODEL_DIR")
	if modelDir == "" {
		modelDir = "./models"
	}
	holder := yolo.NewHolder(modelDir, yolo.LoadDetector)

	defaultModel := os.Getenv("DEFAULT_MODEL")
	if defaultModel == "" {
		defaultModel = yolo.DefaultModel
	}

	// A failed initial load is survivable: the server starts and /detect
	// reports the model as not loaded until a switch succeeds.
	if _, err := holder.Switch(context.Background(), defaultModel); err != nil {
		logger.Warnf("Initial load of model %s failed: %v", defaultModel, err)
	} else {
		logger.Infof("Model %s loaded", holder.CurrentName())
	}

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithMiddleware(),
		config.WithModelHolder(holder),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
}
