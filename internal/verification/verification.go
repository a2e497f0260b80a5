package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/redact"
)

// FailureReason is the reason attached to verdicts produced when the
// classifier could not be consulted.
const FailureReason = "Hata oluştu"

// DefaultTimeout bounds a single classifier call when none is configured.
const DefaultTimeout = 20 * time.Second

var (
	// ErrEmptyImage is returned when a snapshot carries no image data.
	ErrEmptyImage = errors.New("image data cannot be empty")

	// ErrEmptyTarget is returned when no target syllable is given.
	ErrEmptyTarget = errors.New("target text cannot be empty")

	// ErrClassifierPanic wraps a panic raised inside a classifier.
	ErrClassifierPanic = errors.New("classifier panicked")
)

// Image is an encoded still image with an opaque background.
type Image struct {
	MIMEType string
	Data     []byte
}

// Classifier is the external handwriting recognition service.
type Classifier interface {
	// Classify judges whether img shows target written legibly.
	Classify(ctx context.Context, img Image, target string) (domain.CheckResult, error)
}

// Verifier is implemented by Gateway. Callers depend on this interface so
// tests can substitute a canned verdict.
type Verifier interface {
	Verify(ctx context.Context, img Image, target string) domain.CheckResult
}

// Gateway adapts a Classifier to the fail-closed Verifier contract.
type Gateway struct {
	classifier Classifier
	timeout    time.Duration
	logger     *slog.Logger
}

var _ Verifier = (*Gateway)(nil)

// NewGateway creates a Gateway. A non-positive timeout selects
// DefaultTimeout; a nil logger selects slog.Default.
func NewGateway(classifier Classifier, timeout time.Duration, logger *slog.Logger) (*Gateway, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier cannot be nil")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		classifier: classifier,
		timeout:    timeout,
		logger:     logger.With("component", "verification_gateway"),
	}, nil
}

// Verify asks the classifier whether img shows target. Any failure yields
// {IsCorrect: false, Reason: FailureReason}.
func (g *Gateway) Verify(ctx context.Context, img Image, target string) domain.CheckResult {
	start := time.Now()

	result, err := g.classify(ctx, img, target)
	if err != nil {
		g.logger.ErrorContext(ctx, "verification failed, treating attempt as wrong",
			"target", target,
			"error", redact.Error(err),
			"duration_ms", time.Since(start).Milliseconds())
		return Failed()
	}

	g.logger.DebugContext(ctx, "verification completed",
		"target", target,
		"is_correct", result.IsCorrect,
		"reason", result.Reason,
		"duration_ms", time.Since(start).Milliseconds())
	return result
}

func (g *Gateway) classify(ctx context.Context, img Image, target string) (result domain.CheckResult, err error) {
	if len(img.Data) == 0 {
		return domain.CheckResult{}, ErrEmptyImage
	}
	if target == "" {
		return domain.CheckResult{}, ErrEmptyTarget
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrClassifierPanic, r)
		}
	}()

	return g.classifier.Classify(ctx, img, target)
}

// Failed returns the verdict used when verification could not be performed.
func Failed() domain.CheckResult {
	return domain.CheckResult{IsCorrect: false, Reason: FailureReason}
}
