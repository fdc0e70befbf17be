package prompts

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/ff-agent/server/internal/agent/model"
)

//go:embed template/answer_prompt.txt
var answerPrompt string

// RenderAnswer renders the grounded answer-generation prompt. The products
// argument is the bounded grounding list; the model is instructed to
// recommend only from it.
func RenderAnswer(
	ctx context.Context,
	systemContext string,
	intent model.Intent,
	userMessage string,
	profile model.Profile,
	products []model.Product,
	ceiling float64,
	hasCeiling bool,
) (string, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	productsJSON, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("marshal products: %w", err)
	}

	budgetText := "none"
	if hasCeiling {
		budgetText = strconv.FormatFloat(ceiling, 'f', -1, 64)
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(answerPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"SystemContext": systemContext,
		"Intent":        intent.String(),
		"UserMessage":   userMessage,
		"Profile":       string(profileJSON),
		"Products":      string(productsJSON),
		"Budget":        budgetText,
	})
	if err != nil {
		return "", fmt.Errorf("answer prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("answer prompt render: empty result")
	}
	return msgs[0].Content, nil
}
