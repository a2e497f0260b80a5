// Package memory implements store.ProfileStore in process memory. It backs
// the server when no database is configured and serves as a fast fake in
// tests.
package memory
