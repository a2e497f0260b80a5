// Package mocks provides test doubles for the external capabilities the
// session controller depends on: the handwriting classifier, the profile
// store and the audio player.
package mocks
