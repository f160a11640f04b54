package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitpay/internal/config"
	"github.com/mmynk/splitpay/internal/contacts"
	"github.com/mmynk/splitpay/internal/dispatch"
	"github.com/mmynk/splitpay/internal/metrics"
	"github.com/mmynk/splitpay/internal/middleware"
	"github.com/mmynk/splitpay/internal/platform"
	"github.com/mmynk/splitpay/internal/platform/discord"
	"github.com/mmynk/splitpay/internal/platform/loopback"
	"github.com/mmynk/splitpay/internal/platform/smsgateway"
	"github.com/mmynk/splitpay/internal/service"
	"github.com/mmynk/splitpay/internal/session"
	"github.com/mmynk/splitpay/internal/storage/sqlite"
	"github.com/mmynk/splitpay/pkg/api/apiconnect"
	"github.com/mmynk/splitpay/pkg/logging"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite contacts store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ContactsImport != "" {
		n, err := store.ImportFile(ctx, cfg.ContactsImport)
		if err != nil {
			slog.Error("Failed to import contacts", "file", cfg.ContactsImport, "error", err)
			os.Exit(1)
		}
		slog.Info("Contacts imported", "file", cfg.ContactsImport, "count", n)
	}

	m := metrics.New()

	dispatchCfg := dispatch.Config{
		SMS:       smsSender(cfg, logger),
		Launcher:  chatLauncher(cfg, logger),
		Opener:    loopback.Opener{Logger: logger},
		ChatAppID: cfg.ChatAppID,
		Logger:    logger,
		Observer:  m,
	}
	sessions := session.NewManager(dispatchCfg, cfg.SessionTTL, m.ActiveSessions)
	directory := contacts.NewDirectory(contacts.StoreProvider{Store: store}, logger)

	svc := service.NewSplitPayService(sessions, directory, service.PaymentConfig{
		Scheme:           cfg.UPIScheme,
		PayeeAddress:     cfg.UPIPayeeAddress,
		PayeeName:        cfg.UPIPayeeName,
		IncludeLinkInSMS: cfg.SMSIncludeUPILink,
	})

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.LoggingInterceptor(logger),
	)
	apiPath, apiHandler := apiconnect.NewSplitPayServiceHandler(svc, interceptors)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	router.PathPrefix(apiPath).Handler(apiHandler)
	router.Use(loggingMiddleware)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
	}).Handler(router)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(corsHandler, &http2.Server{})

	go sweepSessions(ctx, sessions)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: h2cHandler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// smsSender picks the HTTP gateway when configured and the loopback sender otherwise.
func smsSender(cfg *config.Config, logger *slog.Logger) platform.SMSSender {
	if cfg.SMSGatewayURL == "" {
		slog.Info("No SMS gateway configured, SMS requests are handed to the client")
		return loopback.SMS{Logger: logger}
	}
	slog.Info("Using SMS gateway", "url", cfg.SMSGatewayURL)
	return smsgateway.New(cfg.SMSGatewayURL, cfg.SMSGatewayToken, nil)
}

// chatLauncher posts to a Discord webhook when configured.
func chatLauncher(cfg *config.Config, logger *slog.Logger) platform.AppLauncher {
	if cfg.DiscordWebhookID == "" {
		return loopback.Launcher{Logger: logger}
	}
	launcher, err := discord.New(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
	if err != nil {
		slog.Error("Failed to create Discord launcher, falling back to client launch", "error", err)
		return loopback.Launcher{Logger: logger}
	}
	slog.Info("Using Discord webhook for chat requests")
	return launcher
}

func sweepSessions(ctx context.Context, sessions *session.Manager) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sessions.Sweep(now)
		}
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
