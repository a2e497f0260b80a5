package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/hececiz/internal/config"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/verification"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models used by Classifier.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Classifier implements verification.Classifier using the Gemini API.
type Classifier struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models issues generate-content requests
	models contentGenerator

	// model is the name of the Gemini model to use
	model string

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template
}

var _ verification.Classifier = (*Classifier)(nil)

// NewClassifier creates a Classifier backed by a Gemini API client.
func NewClassifier(ctx context.Context, logger *slog.Logger, cfg config.ClassifierConfig) (*Classifier, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	return newClassifier(logger, client.Models, cfg)
}

func newClassifier(logger *slog.Logger, models contentGenerator, cfg config.ClassifierConfig) (*Classifier, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	tmpl, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		logger:         logger.With("component", "gemini_classifier"),
		models:         models,
		model:          cfg.ModelName,
		promptTemplate: tmpl,
	}, nil
}

// Classify asks the model whether img shows target.
func (c *Classifier) Classify(
	ctx context.Context,
	img verification.Image,
	target string,
) (domain.CheckResult, error) {
	prompt, err := renderPrompt(c.promptTemplate, target)
	if err != nil {
		return domain.CheckResult{}, err
	}

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: img.Data}},
				{Text: prompt},
			},
		},
	}
	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   verdictSchema,
	}

	start := time.Now()
	c.logger.DebugContext(ctx, "sending classification request",
		"model", c.model,
		"target", target,
		"image_bytes", len(img.Data))

	resp, err := c.models.GenerateContent(ctx, c.model, contents, genConfig)
	if err != nil {
		return domain.CheckResult{}, fmt.Errorf("gemini request failed: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return domain.CheckResult{}, err
	}

	result, err := parseVerdict(text)
	if err != nil {
		return domain.CheckResult{}, err
	}

	c.logger.DebugContext(ctx, "classification received",
		"target", target,
		"is_correct", result.IsCorrect,
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
