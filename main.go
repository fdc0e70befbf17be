package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ff-agent/server/internal/agent/graph"
	"github.com/ff-agent/server/internal/agent/graph/prompts"
	"github.com/ff-agent/server/internal/agent/llm"
	"github.com/ff-agent/server/internal/agent/model"
	"github.com/ff-agent/server/internal/agent/repo"
	"github.com/ff-agent/server/internal/agent/shopify"
	pkgredis "github.com/ff-agent/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the demo driver,
// sourced from environment variables (loaded from .env for local runs).
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
}

func main() {
	fmt.Println("Testing support agent turn graph...")
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", cfg.Conversation.TTL, err)
	}

	completer, err := llm.NewGeminiCompleter(ctx, llm.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Completion,
	})
	if err != nil {
		log.Fatalf("Failed to create completer: %v", err)
	}

	runner, err := graph.BuildTurnGraph(ctx, graph.Config{
		Completer:     completer,
		Searcher:      shopify.NewClient(cfg.Storefront),
		ProfileRepo:   repo.NewRedisProfileRepository(rdb, ttl),
		Temperatures:  cfg.Temperature,
		SystemContext: prompts.BuildSystemContext(cfg.Prompt),
	})
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	testTurns := []struct {
		description string
		message     string
	}{
		{
			description: "Budget without occasion triggers the gift/keepsake split",
			message:     "I want something under $60.",
		},
		{
			description: "Quick-reply choice resolves the occasion",
			message:     "#choice:occasion=gift",
		},
		{
			description: "Memorial product request with budget",
			message:     "I need a pet urn for ashes under $60.",
		},
		{
			description: "Policy question",
			message:     "What's your return policy?",
		},
	}

	threadID := "demo-thread-1"

	for i, turn := range testTurns {
		fmt.Printf("\nTurn %d: %s\n", i+1, turn.description)
		fmt.Printf("Message: %q\n", turn.message)

		state, err := runner.ProcessTurn(ctx, model.TurnInput{
			ThreadID:    threadID,
			UserMessage: turn.message,
		})
		if err != nil {
			log.Fatalf("Failed to process turn %d: %v", i+1, err)
		}

		if state.NeedsClarification {
			fmt.Printf("Clarify: %s\n", state.ClarificationQuestion)
		} else {
			fmt.Printf("Answer: %s\n", state.Answer)
		}
		if b, err := json.MarshalIndent(state.Actions, "", "  "); err == nil {
			fmt.Printf("Actions: %s\n", string(b))
		}
		fmt.Printf("Profile: %v  ToolError: %q\n", state.Profile, state.ToolError)
		fmt.Println("────────────────────────────────────────────")

		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("All turns completed successfully")
}
