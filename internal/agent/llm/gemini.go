package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

// Config holds what is needed to construct the Gemini-backed completer.
type Config struct {
	APIKey  string
	BaseURL string
	Model   model.CompletionModelConfig
}

// GeminiCompleter implements model.Completer on a single Gemini chat model.
// Temperature is supplied per call, so one model instance serves the
// deterministic extraction pass and the conversational passes alike.
type GeminiCompleter struct {
	cm *gemini.ChatModel
}

func NewGeminiCompleter(ctx context.Context, cfg Config) (*GeminiCompleter, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:    client,
		Model:     cfg.Model.Model,
		MaxTokens: &cfg.Model.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating completion model")
		return nil, fmt.Errorf("error creating completion model: %w", err)
	}

	return &GeminiCompleter{cm: cm}, nil
}

// Complete implements model.Completer.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	out, err := g.cm.Generate(ctx,
		[]*schema.Message{schema.UserMessage(prompt)},
		einomodel.WithTemperature(temperature),
	)
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	return out.Content, nil
}

var _ model.Completer = (*GeminiCompleter)(nil)
