package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/whisper/gemini-moderator/internal/audit"
	"github.com/whisper/gemini-moderator/internal/config"
	"github.com/whisper/gemini-moderator/internal/gemini"
	"github.com/whisper/gemini-moderator/internal/messaging"
	"github.com/whisper/gemini-moderator/internal/metrics"
	"github.com/whisper/gemini-moderator/internal/moderation"
	"github.com/whisper/gemini-moderator/internal/relay"
)

func main() {
	configPath := flag.String("config", "moderator.yaml", "path to the YAML config file")
	flag.Parse()

	// A missing .env is normal in production.
	_ = godotenv.Load()

	logger := newLogger()
	defer logger.Sync() //nolint:errcheck

	if err := run(*configPath, logger); err != nil {
		logger.Fatal("moderator exited", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if os.Getenv("LOG_FORMAT") == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	return zap.Must(cfg.Build())
}

func run(configPath string, logger *zap.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	creds, err := config.LoadCredentials(os.LookupEnv)
	if err != nil {
		return err
	}

	prompt, err := moderation.NewPolicyPrompt(cfg.Gemini.PolicyPrompt)
	if err != nil {
		return err
	}
	builder, err := moderation.NewRequestBuilder(prompt, cfg.Gemini.SafetySettings, moderation.DefaultGenerationConfig())
	if err != nil {
		return err
	}

	client := gemini.NewClient(gemini.ClientConfig{
		BaseURL: cfg.Gemini.BaseURL,
		Model:   cfg.Gemini.Model,
		APIKey:  creds.GeminiAPIKey,
		Timeout: cfg.Gemini.Timeout,
	}, logger)

	// NATS setup.
	natsConfig := messaging.DefaultNATSConfig()
	natsConfig.URL = cfg.NATSURL
	natsConfig.Token = creds.GatewayToken

	natsClient, err := messaging.NewNATSClient(natsConfig, logger)
	if err != nil {
		return err
	}
	defer natsClient.Close()

	gateway := relay.NewGateway(natsClient)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sinks := []audit.Sink{
		audit.NewLogSink(logger),
		audit.NewChannelSink(gateway, cfg.Channels.Audit, logger),
	}
	if cfg.PubSub.Enabled() {
		ps, err := audit.NewPubSubSink(ctx, cfg.PubSub.ProjectID, cfg.PubSub.TopicID, logger)
		if err != nil {
			return err
		}
		defer ps.Close() //nolint:errcheck
		sinks = append(sinks, ps)
	}

	moderator := moderation.NewModerator(builder, client, gateway, audit.NewMultiSink(sinks...), moderation.Config{
		Thresholds:      cfg.Thresholds,
		WarnTemplate:    cfg.WarnTemplate,
		ModLogChannelID: cfg.Channels.ModLog,
		Model:           cfg.Gemini.Model,
	}, logger)

	// In-flight events keep this context until the service has drained.
	handleCtx, cancelHandle := context.WithCancel(context.Background())
	defer cancelHandle()

	service := relay.NewService(natsClient, moderator, cfg.Workers, logger)
	if err := service.Start(handleCtx); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("moderator running",
		zap.String("nats_url", cfg.NATSURL),
		zap.String("endpoint", client.Endpoint()),
		zap.Uint16("delete_threshold", cfg.Thresholds.Delete),
		zap.Uint16("warn_threshold", cfg.Thresholds.Warn),
		zap.Int("workers", cfg.Workers),
		zap.String("metrics_addr", cfg.MetricsAddr),
		zap.Bool("pubsub", cfg.PubSub.Enabled()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		service.Stop()
		if err := natsClient.Flush(5 * time.Second); err != nil {
			logger.Warn("flush pending commands", zap.Error(err))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
