package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/hececiz/internal/domain"
	"google.golang.org/genai"
)

// ResponseSchema represents the expected structure of a verdict from the Gemini API
type ResponseSchema struct {
	// IsCorrect reports whether the drawing shows the target syllable.
	// A pointer distinguishes a missing field from false.
	IsCorrect *bool `json:"isCorrect"`

	// Reason is an optional short explanation for the learner
	Reason string `json:"reason,omitempty"`
}

// verdictSchema is sent with every request so the model answers with JSON
// decodable into ResponseSchema.
var verdictSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"isCorrect": {
			Type:        genai.TypeBoolean,
			Description: "true only if the drawing shows the target syllable",
		},
		"reason": {
			Type:        genai.TypeString,
			Description: "at most five words explaining the verdict",
		},
	},
	Required: []string{"isCorrect"},
}

// parseVerdict decodes the model's JSON text into a CheckResult.
func parseVerdict(text string) (domain.CheckResult, error) {
	text = strings.TrimSpace(text)
	// Models occasionally wrap JSON in a markdown fence despite the MIME type.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return domain.CheckResult{}, fmt.Errorf("%w: empty response text", ErrInvalidResponse)
	}

	var resp ResponseSchema
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return domain.CheckResult{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.IsCorrect == nil {
		return domain.CheckResult{}, fmt.Errorf("%w: missing isCorrect", ErrInvalidResponse)
	}

	return domain.CheckResult{
		IsCorrect: *resp.IsCorrect,
		Reason:    strings.TrimSpace(resp.Reason),
	}, nil
}
