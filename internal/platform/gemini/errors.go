package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrInvalidConfig is returned when the classifier configuration is unusable.
	ErrInvalidConfig = errors.New("invalid classifier configuration")

	// ErrInvalidResponse is returned when the model response cannot be
	// decoded into a verdict.
	ErrInvalidResponse = errors.New("invalid classifier response")

	// ErrContentBlocked is returned when the model refuses to answer for
	// safety reasons.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrEmptyTarget is returned when no target syllable is supplied.
	ErrEmptyTarget = errors.New("target text cannot be empty")
)
