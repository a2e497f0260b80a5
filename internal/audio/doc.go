// Package audio provides the best-effort sound output used during practice:
// syllable pronunciation and short feedback cues.
//
// A Library resolves clips. Syllables come from pre-recorded MP3 files named
// after the Turkish lower-case syllable, falling back to a text-to-speech
// Synthesizer whose output is cached next to the recordings. Cues are
// synthesised tones encoded as WAV. A Player resolves clips in the
// background and hands them to a Sink; every failure is logged and dropped.
package audio
