package prompts

import (
	"fmt"
	"os"

	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

// BuildSystemContext assembles the assistant persona plus the optional store
// knowledge document. A missing knowledge file is not an error; the context
// degrades to the persona alone.
func BuildSystemContext(cfg model.PromptConfig) string {
	knowledge := ""
	if cfg.KnowledgePath != "" {
		b, err := os.ReadFile(cfg.KnowledgePath)
		if err != nil {
			logx.Warn().Err(err).Str("path", cfg.KnowledgePath).Msg("store knowledge not loaded")
		} else {
			knowledge = string(b)
		}
	}

	return fmt.Sprintf(
		"You are a compassionate assistant for an English-first pet memorial store (%s).\n"+
			"Default to English unless user writes in Chinese.\n"+
			"Personalization is TEXT-ONLY.\n\n%s",
		cfg.StoreName, knowledge,
	)
}
