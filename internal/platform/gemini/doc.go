// Package gemini implements verification.Classifier on top of Google's
// Gemini API.
//
// A classification request carries the JPEG snapshot as inline data plus a
// prompt rendered from a text/template. The model is asked for JSON matching
// a fixed response schema ({"isCorrect": bool, "reason": string}), which is
// decoded into a domain.CheckResult. Safety blocks, empty candidates and
// malformed JSON are reported as errors; the verification gateway turns them
// into negative verdicts. There is no retry.
package gemini
