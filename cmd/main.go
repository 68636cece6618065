package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pashaarshad/MultiAgent-MCP-System/config"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/agents"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/api"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/provider"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/store"
)

func main() {
	// .env is loaded before viper so local overrides reach the config layer.
	// A missing file is the normal production case.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: error loading .env file: %v", err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	logger := newLogger(cfg)
	defer logger.Sync() //nolint:errcheck

	// Provider chains. Each workflow gets its own chain because the local
	// and cloud model pairs differ per concern, but the ordering policy is
	// the same configuration-driven one everywhere.
	chatChain := newChain(logger, cfg, cfg.OllamaChatModel, cfg.OpenRouterChatModel)
	codeChain := newChain(logger, cfg, cfg.OllamaCodeModel, cfg.OpenRouterCodeModel)
	routerChain := newChain(logger, cfg, cfg.OllamaRouterModel, cfg.OpenRouterRouterModel)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable at startup, project persistence will fail until it recovers",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	cancelPing()

	projects := store.NewRedisStore(logger, rdb)
	enhancer := agents.NewEnhancer(logger, chatChain)
	orchestrator := agents.NewOrchestrator(logger, enhancer, codeChain, projects)

	taskRouter, err := agents.NewRouter(logger, routerChain)
	if err != nil {
		logger.Fatal("cannot build task router", zap.Error(err))
	}

	// The status endpoints probe the local server directly.
	statusClient := provider.NewOllama(cfg.OllamaHost, cfg.OllamaChatModel, cfg.LocalTimeout())

	handler := api.NewHandler(logger, cfg, orchestrator, taskRouter, enhancer, projects, statusClient)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsCfg.AllowCredentials = true
	router.Use(cors.New(corsCfg))

	api.RegisterRoutes(router, handler)

	server := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.CloudTimeoutSeconds+30) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting API server", zap.String("addr", cfg.ServerAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("API server listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newChain builds one fallback chain for a local/cloud model pair. The
// cloud client is omitted entirely when cloud fallback is disabled, and
// ordering follows the prefer-cloud toggle for every chain alike.
func newChain(logger *zap.Logger, cfg config.Config, localModel, cloudModel string) *provider.Fallback {
	local := provider.NewOllama(cfg.OllamaHost, localModel, cfg.LocalTimeout())

	var cloud provider.Client
	if cfg.FallbackToCloud {
		cloud = provider.NewOpenRouter(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cloudModel, cfg.CloudTimeout())
	}

	if cfg.PreferCloud {
		return provider.NewFallback(logger, cloud, local)
	}
	return provider.NewFallback(logger, local, cloud)
}

func newLogger(cfg config.Config) *zap.Logger {
	level := zapcore.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var zapCfg zap.Config
	if cfg.AppEnv == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	return logger
}
