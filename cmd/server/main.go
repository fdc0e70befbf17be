package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ff-agent/server/internal/agent/graph"
	"github.com/ff-agent/server/internal/agent/graph/prompts"
	"github.com/ff-agent/server/internal/agent/llm"
	"github.com/ff-agent/server/internal/agent/model"
	"github.com/ff-agent/server/internal/agent/repo"
	"github.com/ff-agent/server/internal/agent/shopify"
	"github.com/ff-agent/server/internal/core"
	"github.com/ff-agent/server/internal/server"
	logx "github.com/ff-agent/server/pkg/logger"
	pkgredis "github.com/ff-agent/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Completion   model.CompletionModelConfig
	Temperature  model.TemperatureConfig
	Prompt       model.PromptConfig
	Conversation model.ConversationConfig
	Storefront   model.StorefrontConfig

	// HTTP
	Addr      string `envconfig:"HTTP_ADDR" default:":8000"`
	StaticDir string `envconfig:"HTTP_STATIC_DIR" default:"static"`
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.EnvironmentFromOS()})

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise Redis client")
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Str("ttl", cfg.Conversation.TTL).Err(err).Msg("invalid CONVERSATION_TTL")
	}

	completer, err := llm.NewGeminiCompleter(ctx, llm.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Completion,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to create completer")
	}

	runner, err := graph.BuildTurnGraph(ctx, graph.Config{
		Completer:     completer,
		Searcher:      shopify.NewClient(cfg.Storefront),
		ProfileRepo:   repo.NewRedisProfileRepository(rdb, ttl),
		Temperatures:  cfg.Temperature,
		SystemContext: prompts.BuildSystemContext(cfg.Prompt),
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build turn graph")
	}

	srv := server.New(runner, cfg.StaticDir)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logx.Info().Msg("shutting down")
		if err := srv.Shutdown(); err != nil {
			logx.Error().Err(err).Msg("shutdown failed")
		}
	}()

	logx.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := srv.Listen(cfg.Addr); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}
