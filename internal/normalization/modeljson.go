package normalization

import (
	"fmt"
	"strings"

	pkgerrors "github.com/yungbote/lecturemate-backend/internal/pkg/errors"
)

const diagnosticLimit = 500

// CleanModelJSON recovers the JSON object span from raw model output.
// Models prepend commentary and wrap output in code fences despite
// instructions, so: trim, strip a leading/trailing fence, then slice
// from the first '{' to the last '}'. Idempotent on already-clean JSON.
func CleanModelJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w: empty model output", pkgerrors.ErrMalformedResponse)
	}

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last == -1 || last < first {
		return "", fmt.Errorf("%w: no JSON object in output: %s",
			pkgerrors.ErrMalformedResponse, Truncate(text, diagnosticLimit))
	}
	return text[first : last+1], nil
}
