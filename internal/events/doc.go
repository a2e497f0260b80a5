// Package events provides the publish side of the practice session's
// observable state.
//
// Sessions emit an Event for every visible change (feedback state, current
// syllable, scores, notices, audio). Handlers registered with an
// InMemoryEventEmitter receive them synchronously. The Journal handler keeps
// a bounded per-session history that the HTTP API serves to polling clients.
//
// The primary components are:
// - Event: A state change with a JSON payload
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - Journal: Bounded per-session event history
package events
