package observers

import (
	"context"
	"strings"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/ff-agent/server/pkg/logger"
)

// newModelHandler builds a typed ModelCallbackHandler logging the prompt and
// completion around each model call.
func newModelHandler() *callbackHelper.ModelCallbackHandler {
	return &callbackHelper.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			size := 0
			if input != nil {
				for _, m := range input.Messages {
					if m != nil {
						size += len(m.Content)
					}
				}
			}
			logx.Debug().
				Str("component", info.Name).
				Int("prompt_bytes", size).
				Msg("model call start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			content := ""
			if output != nil && output.Message != nil {
				content = strings.TrimSpace(output.Message.Content)
			}
			logx.Debug().
				Str("component", info.Name).
				Int("completion_bytes", len(content)).
				Msg("model call end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("component", info.Name).Msg("model call failed")
			return ctx
		},
	}
}
