// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts the profile store, the session manager and
// the audio library to a JSON API used by the drawing client.
package api
