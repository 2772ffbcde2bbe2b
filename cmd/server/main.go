package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/wayfarerhq/wayfarer-api/internal/app"
	"github.com/wayfarerhq/wayfarer-api/internal/config"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/googleauth"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/itinerary"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	infra, err := app.NewInfrastructure(ctx, *cfg)
	if err != nil {
		log.Fatalf("Failed to initialize infrastructure: %v", err)
	}

	imageStore, err := storage.NewS3Store(ctx, cfg.S3)
	if err != nil {
		infra.Logger().Fatal("Failed to initialize image store", zap.Error(err))
	}

	application := app.NewApp(infra, cfg, app.Collaborators{
		GoogleVerifier: googleauth.NewVerifier(googleauth.Config{ClientID: cfg.Google.ClientID}),
		TripGenerator: itinerary.NewOpenAIGenerator(itinerary.OpenAIConfig{
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
		}),
		ImageStore: imageStore,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		infra.Logger().Info("Received shutdown signal")
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		infra.Logger().Fatal("Application failed", zap.Error(err))
	}
}
