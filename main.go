package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxetravel/config"
	"luxetravel/database"
	"luxetravel/handlers"
	"luxetravel/ledger"
	"luxetravel/logger"
	"luxetravel/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize ledger
	store, closeStore, err := openLedger(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("[ledger] failed to open", zap.String("backend", cfg.LedgerBackend), zap.Error(err))
	}
	defer closeStore()

	// Initialize AI service
	ai, err := services.NewGeminiClient(ctx, services.GeminiOptions{
		APIKey:         cfg.GeminiAPIKey,
		SearchModel:    cfg.SearchModel,
		PlannerModel:   cfg.PlannerModel,
		ChatModel:      cfg.ChatModel,
		TTSModel:       cfg.TTSModel,
		Voice:          cfg.Voice,
		ThinkingBudget: cfg.ThinkingBudget,
		Timeout:        cfg.AITimeout,
	})
	if err != nil {
		logger.Log.Fatal("[ai] failed to initialize", zap.Error(err))
	}

	sessions := services.NewSessionStore(cfg.SessionTTL)
	go sessions.RunJanitor(ctx, time.Minute)

	// Set Gin mode
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger())

	// Trusted proxies (the host sits behind a proxy)
	_ = r.SetTrustedProxies([]string{"0.0.0.0/0"})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.NewHandler(ai, store, sessions, cfg.LedgerBackend)
	h.Register(r.Group("/api"))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.AITimeout + 30*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Log.Info("🚀 LuxeTravel backend starting",
			zap.String("port", cfg.Port), zap.String("ledger", cfg.LedgerBackend), zap.Bool("ai", ai.Configured()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server forced to shutdown", zap.Error(err))
	}
}

// openLedger picks the booking store named by LEDGER_BACKEND. The returned
// func releases whatever the store holds open.
func openLedger(ctx context.Context, cfg config.Config) (ledger.Store, func(), error) {
	noop := func() {}

	switch cfg.LedgerBackend {
	case config.LedgerMemory:
		logger.Log.Warn("[ledger] using in-memory store, bookings are lost on restart")
		return ledger.NewMemoryStore(), noop, nil

	case config.LedgerFile:
		logger.Log.Info("[ledger] using file store", zap.String("path", cfg.LedgerPath))
		return ledger.NewFileStore(cfg.LedgerPath), noop, nil

	case config.LedgerSQLite:
		s, err := ledger.OpenSQLite(cfg.LedgerPath)
		if err != nil {
			return nil, noop, err
		}
		logger.Log.Info("[ledger] using sqlite store", zap.String("path", cfg.LedgerPath))
		return s, func() { _ = s.Close() }, nil

	case config.LedgerPostgres:
		db, err := database.Open(ctx, cfg.DSN())
		if err != nil {
			return nil, noop, err
		}
		return ledger.NewPostgresStore(db), func() { _ = db.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
}
