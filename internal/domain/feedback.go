package domain

// FeedbackState is the phase of a practice turn.
type FeedbackState string

// Valid feedback states.
const (
	FeedbackIdle     FeedbackState = "IDLE"
	FeedbackChecking FeedbackState = "CHECKING"
	FeedbackCorrect  FeedbackState = "CORRECT"
	FeedbackWrong    FeedbackState = "WRONG"
)

// IsValid reports whether the state is one of the defined feedback states.
func (s FeedbackState) IsValid() bool {
	switch s {
	case FeedbackIdle, FeedbackChecking, FeedbackCorrect, FeedbackWrong:
		return true
	default:
		return false
	}
}

// CheckResult is a classifier verdict for one drawing.
type CheckResult struct {
	IsCorrect bool   `json:"isCorrect"`
	Reason    string `json:"reason,omitempty"`
}

// Tool is the capture surface's active drawing mode.
type Tool string

// Valid tools.
const (
	ToolInk   Tool = "ink"
	ToolErase Tool = "erase"
)

// IsValid reports whether t is a known tool.
func (t Tool) IsValid() bool {
	return t == ToolInk || t == ToolErase
}
