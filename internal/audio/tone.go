package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the sample rate of synthesised cues, in Hz.
const SampleRate = 22050

type waveform int

const (
	waveSine waveform = iota
	waveSawtooth
	waveTriangle
)

// tone is a single oscillator sweeping exponentially from startHz to endHz
// while its gain decays towards silence.
type tone struct {
	wave     waveform
	startHz  float64
	endHz    float64
	duration time.Duration
	gain     float64
}

var cueTones = map[Cue]tone{
	CueCorrect: {wave: waveSine, startHz: 500, endHz: 1000, duration: 500 * time.Millisecond, gain: 0.3},
	CueWrong:   {wave: waveSawtooth, startHz: 150, endHz: 100, duration: 400 * time.Millisecond, gain: 0.3},
	CueSkip:    {wave: waveTriangle, startHz: 300, endHz: 400, duration: 200 * time.Millisecond, gain: 0.3},
}

// endGain is the gain reached at the end of a tone, relative to its start.
const endGain = 0.01

func (t tone) sampleCount(rate int) int {
	return int(math.Round(float64(rate) * t.duration.Seconds()))
}

// samples renders the tone as signed 16-bit PCM.
func (t tone) samples(rate int) []int16 {
	n := t.sampleCount(rate)
	out := make([]int16, n)
	if n == 0 {
		return out
	}

	phase := 0.0
	for i := range out {
		progress := float64(i) / float64(n)
		freq := t.startHz * math.Pow(t.endHz/t.startHz, progress)
		gain := t.gain * math.Pow(endGain, progress)

		out[i] = int16(math.Round(oscillate(t.wave, phase) * gain * math.MaxInt16))

		phase += freq / float64(rate)
		phase -= math.Floor(phase)
	}
	return out
}

// oscillate returns the waveform value in [-1, 1] at phase in [0, 1).
func oscillate(w waveform, phase float64) float64 {
	switch w {
	case waveSawtooth:
		return 2*phase - 1
	case waveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// encodeWAV wraps mono 16-bit PCM samples in a RIFF/WAVE container.
func encodeWAV(samples []int16, rate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
		headerSize    = 44
	)
	dataSize := len(samples) * 2
	blockAlign := channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(headerSize + dataSize)

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(headerSize-8+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16)) // PCM chunk size
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))  // PCM format
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(rate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(rate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(&buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// CueClip synthesises the clip for cue.
func CueClip(cue Cue) (Clip, error) {
	t, ok := cueTones[cue]
	if !ok {
		return Clip{}, ErrUnknownCue
	}
	return Clip{
		Name:     string(cue) + ".wav",
		MIMEType: MIMETypeWAV,
		Data:     encodeWAV(t.samples(SampleRate), SampleRate),
	}, nil
}
