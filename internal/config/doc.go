// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, config.yaml, .env). It provides
// type-safe access to the settings needed by the server, the profile store,
// the handwriting classifier, the audio player and the practice session.
package config
