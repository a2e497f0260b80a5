// Package session implements the practice turn state machine.
//
// A Controller owns one learner's curriculum, capture surface and score
// ledger. It moves each turn through IDLE, CHECKING and then CORRECT or WRONG,
// asks the verification gateway for a verdict, plays audio cues, credits the
// learner's profile and advances to the next syllable on a timer. A Manager
// keeps the live controllers of a server process keyed by session ID.
package session
