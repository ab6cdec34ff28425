package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"example.com/fittracker/internal/api"
	"example.com/fittracker/internal/auth"
	"example.com/fittracker/internal/config"
	"example.com/fittracker/internal/summary"
	httptransport "example.com/fittracker/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fittracker api stopped: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var publisher summary.Publisher = summary.NoopPublisher{}
	if cfg.PublishingEnabled() {
		producer := summary.NewKafkaProducer(cfg.KafkaBrokers)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Printf("kafka producer close: %v", err)
			}
		}()

		opts := []summary.Option{}
		if cfg.SchemaRegistryURL != "" {
			opts = append(opts, summary.WithSchemaRegistry(summary.NewSchemaRegistryClient(cfg.SchemaRegistryURL)))
		}
		publisher = summary.NewKafkaPublisher(producer, cfg.SummaryTopic, opts...)
		log.Printf("publishing summaries to %s (brokers=%v)", cfg.SummaryTopic, cfg.KafkaBrokers)
	}

	service := summary.NewService(publisher, summary.WithPublishTimeout(cfg.PublishTimeout))
	if cfg.AuthDisabled {
		log.Printf("authentication disabled, requests run as the anonymous local user")
	}

	limiter := httptransport.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	requestLogger := log.New(log.Writer(), "[http] ", log.LstdFlags)
	server := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.HTTPAddress),
		newHandler(cfg, service, limiter, requestLogger))
	metricsSrv := &http.Server{Addr: cfg.MetricsAddress, Handler: promhttp.Handler()}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("fittracker api listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Printf("metrics listening on %s", cfg.MetricsAddress)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				limiter.Prune()
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return errors.Join(server.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

// newHandler wraps the API router as CORS -> request log -> rate limit -> auth.
// Preflights are answered before the limiter; unauthenticated calls are limited.
func newHandler(cfg config.Config, service *summary.Service, limiter *httptransport.RateLimiter, logger *log.Logger) http.Handler {
	router := mux.NewRouter()
	api.NewHandler(service).RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	var authenticated http.Handler
	if cfg.AuthDisabled {
		authenticated = auth.Anonymous(router)
	} else {
		authenticated = auth.NewMiddleware(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer},
			auth.PublicPaths("/healthz", "/metrics")).Wrap(router)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(httptransport.RequestLogger(logger)(limiter.Wrap(authenticated)))
}
