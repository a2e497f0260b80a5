// Package verification judges a handwriting snapshot against the syllable
// the learner was asked to write.
//
// The Gateway wraps a Classifier and never returns an error: timeouts,
// transport failures, malformed responses and panics all become a negative
// verdict carrying FailureReason. An unavailable classifier must never mark
// an attempt correct.
package verification
