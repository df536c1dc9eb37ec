package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"myself/console/internal/app"
	"myself/console/internal/assets"
	"myself/console/internal/authgw"
	"myself/console/internal/config"
	"myself/console/internal/deploy"
	"myself/console/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	redisStore, err := store.NewRedisStore(cfg.RedisURL, cfg.StoreQuotaBytes)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer redisStore.Close()

	gateway := authgw.New(cfg.AuthEndpointURL, &http.Client{Timeout: 15 * time.Second})
	if !gateway.Configured() {
		log.Printf("WARNING: auth endpoint not configured, login is disabled")
	}

	publisher := deploy.New(cfg.GitHubAPIURL, cfg.DeployFilePath, &http.Client{Timeout: 30 * time.Second})

	var assetStore app.AssetStore
	if strings.TrimSpace(cfg.MinioEndpoint) != "" {
		svc, err := assets.New(ctx, assets.Config{
			Endpoint:      cfg.MinioEndpoint,
			AccessKey:     cfg.MinioAccessKey,
			SecretKey:     cfg.MinioSecretKey,
			Bucket:        cfg.MinioBucket,
			UseSSL:        cfg.MinioUseSSL,
			PublicBaseURL: cfg.AssetBaseURL,
		})
		if err != nil {
			log.Fatalf("asset store connection failed: %v", err)
		}
		assetStore = svc
		log.Printf("Asset uploads enabled, bucket %s", cfg.MinioBucket)
	}

	service := app.NewService(redisStore, gateway, publisher, assetStore, cfg.SessionTTL)
	service.Bootstrap(ctx)

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Console API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
