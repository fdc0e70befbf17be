package prompts

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/ff-agent/server/internal/agent/model"
)

//go:embed template/clarify_prompt.txt
var clarifyPrompt string

// RenderClarify renders the fallback clarification prompt for the given turn.
func RenderClarify(ctx context.Context, systemContext string, intent model.Intent, profile model.Profile, userMessage string) (string, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(clarifyPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"SystemContext": systemContext,
		"Profile":       string(profileJSON),
		"Intent":        intent.String(),
		"UserMessage":   userMessage,
	})
	if err != nil {
		return "", fmt.Errorf("clarify prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("clarify prompt render: empty result")
	}
	return msgs[0].Content, nil
}
