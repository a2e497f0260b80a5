package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/verification"
)

// MockClassifier implements verification.Classifier for testing
type MockClassifier struct {
	// ClassifyFn allows test cases to mock the Classify behavior
	ClassifyFn func(ctx context.Context, img verification.Image, target string) (domain.CheckResult, error)

	// Default response values
	Result domain.CheckResult
	Err    error

	// Call tracking for verification
	ClassifyCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Classify was called
		Count int

		// Targets contains all target texts passed to Classify calls
		Targets []string

		// Images contains all images passed to Classify calls
		Images []verification.Image
	}
}

var _ verification.Classifier = (*MockClassifier)(nil)

// Classify implements the verification.Classifier interface
func (m *MockClassifier) Classify(
	ctx context.Context,
	img verification.Image,
	target string,
) (domain.CheckResult, error) {
	m.ClassifyCalls.mu.Lock()
	m.ClassifyCalls.Count++
	m.ClassifyCalls.Targets = append(m.ClassifyCalls.Targets, target)
	m.ClassifyCalls.Images = append(m.ClassifyCalls.Images, img)
	m.ClassifyCalls.mu.Unlock()

	if m.ClassifyFn != nil {
		return m.ClassifyFn(ctx, img, target)
	}

	return m.Result, m.Err
}

// CallCount returns the number of Classify calls recorded so far.
func (m *MockClassifier) CallCount() int {
	m.ClassifyCalls.mu.Lock()
	defer m.ClassifyCalls.mu.Unlock()
	return m.ClassifyCalls.Count
}

// LastTarget returns the target of the most recent Classify call, or an
// empty string if there has been none.
func (m *MockClassifier) LastTarget() string {
	m.ClassifyCalls.mu.Lock()
	defer m.ClassifyCalls.mu.Unlock()
	if len(m.ClassifyCalls.Targets) == 0 {
		return ""
	}
	return m.ClassifyCalls.Targets[len(m.ClassifyCalls.Targets)-1]
}

// NewMockClassifierWithVerdict creates a MockClassifier that always returns
// the given verdict.
func NewMockClassifierWithVerdict(isCorrect bool, reason string) *MockClassifier {
	return &MockClassifier{
		Result: domain.CheckResult{IsCorrect: isCorrect, Reason: reason},
	}
}

// NewMockClassifierWithError creates a MockClassifier that returns the
// specified error
func NewMockClassifierWithError(err error) *MockClassifier {
	return &MockClassifier{
		Err: err,
	}
}

// NewBlockingClassifier creates a MockClassifier whose calls block until
// release is closed, then return the given verdict. It lets tests observe
// the controller while a verification is in flight.
func NewBlockingClassifier(release <-chan struct{}, isCorrect bool) *MockClassifier {
	return &MockClassifier{
		ClassifyFn: func(ctx context.Context, _ verification.Image, _ string) (domain.CheckResult, error) {
			select {
			case <-release:
				return domain.CheckResult{IsCorrect: isCorrect}, nil
			case <-ctx.Done():
				return domain.CheckResult{}, ctx.Err()
			}
		},
	}
}
