package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/extract_prompt.txt
var extractPrompt string

// RenderExtract renders the profile-extraction prompt via the Eino prompt
// component. The template contains a literal JSON schema, so the message is
// substituted with a plain replacer instead of a format string and wrapped
// through a messages placeholder to still emit prompt callbacks.
func RenderExtract(ctx context.Context, userMessage string) (string, error) {
	content := strings.NewReplacer(
		"{user_message}", userMessage,
	).Replace(extractPrompt)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("extract_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"extract_messages": []*schema.Message{schema.UserMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("extract prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("extract prompt render: empty result")
	}
	return msgs[0].Content, nil
}
