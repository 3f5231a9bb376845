package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/yavemu/products-shop-web/internal/pkg/telemetry"
	"github.com/yavemu/products-shop-web/internal/shopbackend"
)

func main() {
	telemetry.InitLogger("shop-backend")

	shutdownTracer, err := telemetry.SetupTracer(context.Background(), "shop-backend")
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	httpAddr := getEnv("HTTP_ADDR", ":9000")

	server := &http.Server{
		Addr:              httpAddr,
		Handler:           shopbackend.NewServer().Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("shop backend (in-memory) running on %s", httpAddr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
