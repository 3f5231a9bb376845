package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/yavemu/products-shop-web/internal/cart"
	"github.com/yavemu/products-shop-web/internal/checkout"
	checkoutsqlite "github.com/yavemu/products-shop-web/internal/checkout/checkoutlog/sqlite"
	"github.com/yavemu/products-shop-web/internal/pkg/cache"
	"github.com/yavemu/products-shop-web/internal/pkg/events"
	"github.com/yavemu/products-shop-web/internal/pkg/metrics"
	"github.com/yavemu/products-shop-web/internal/pkg/telemetry"
	"github.com/yavemu/products-shop-web/internal/shopapi"
	"github.com/yavemu/products-shop-web/internal/storefront/infra/httpx"
)

func main() {
	telemetry.InitLogger("storefront")

	ctx := context.Background()
	shutdownTracer, err := telemetry.SetupTracer(ctx, "storefront")
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	httpAddr := getEnv("HTTP_ADDR", ":8080")
	apiBaseURL := getEnv("API_BASE_URL", "http://localhost:9000")

	apiClient := shopapi.NewClient(apiBaseURL)

	// Cart persistence: Redis when configured, in-process otherwise.
	var kv cache.KV
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		kv = cache.NewRedisKV(redisAddr)
	} else {
		slog.Warn("REDIS_ADDR not set, cart persists only in memory")
		kv = cache.NewMemoryKV()
	}
	cartStore := cart.NewStore(kv, cache.Key("storefront", "cart", "default"), 0)
	if err := cartStore.Load(ctx); err != nil {
		log.Fatalf("could not load cart: %v", err)
	}

	logRepo, err := checkoutsqlite.Open(getEnv("CHECKOUT_LOG_PATH", "./data/checkout.db"))
	if err != nil {
		log.Fatalf("could not open checkout log: %v", err)
	}
	defer logRepo.Close()

	processor := checkout.NewProcessor(apiClient,
		checkout.WithLog(logRepo),
		checkout.WithObserver(func(s checkout.State) {
			slog.Info("checkout state",
				"step", s.CurrentStep.String(), "processing", s.IsProcessing, "error", s.Err)
		}),
	)

	publisher := events.NewPublisher(os.Getenv("KAFKA_BROKERS"), events.TopicCheckoutCompleted)
	defer publisher.Close()

	handler := httpx.NewHandler(apiClient, cartStore, processor, logRepo, publisher)
	router := httpx.NewRouter(handler, metrics.NewServerMetrics("storefront"))

	server := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("storefront running on %s (backend: %s)", httpAddr, apiBaseURL)
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
