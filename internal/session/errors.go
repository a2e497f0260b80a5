package session

import "errors"

var (
	// ErrNothingDrawn is returned by Submit when the surface holds no ink.
	ErrNothingDrawn = errors.New("nothing drawn")

	// ErrBusy is returned when a learner action arrives outside IDLE.
	ErrBusy = errors.New("session is busy")

	// ErrClosed is returned by every action on a closed controller.
	ErrClosed = errors.New("session is closed")

	// ErrNotFound is returned by Manager for an unknown session ID.
	ErrNotFound = errors.New("session not found")

	// ErrTooManySessions is returned by Manager.Start at capacity.
	ErrTooManySessions = errors.New("too many active sessions")

	// ErrInvalidStroke is returned by Stroke for an empty point list.
	ErrInvalidStroke = errors.New("stroke must contain at least one point")
)
