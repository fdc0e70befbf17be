package parsers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ff-agent/server/internal/agent/model"
)

// safety limit to avoid pathological model output
const maxContentLen = 64 * 1024 // 64KB

// ParseProfileExtraction parses the structured-extraction model response into
// the known profile keys. The model is asked for a flat JSON object with
// nulls for unknown fields, but the response is treated as hostile: code
// fences and surrounding prose are stripped, nulls and empty strings are
// skipped, unknown keys are dropped, and numbers are rendered back to display
// strings. A response with no JSON object at all is an error so the caller
// can fall back to rule-based extraction only.
func ParseProfileExtraction(content string) (map[string]string, error) {
	if len(content) > maxContentLen {
		content = content[:maxContentLen]
	}

	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no json object in extraction response")
	}
	s = s[start : end+1]

	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal extraction response: %w", err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if !model.KnownProfileKey(k) {
			continue
		}
		switch t := v.(type) {
		case nil:
			// null means unknown
		case string:
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				out[k] = trimmed
			}
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return out, nil
}
