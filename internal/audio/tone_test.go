package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCueClipIsWAV(t *testing.T) {
	tests := []struct {
		cue         Cue
		wantSamples int
	}{
		{cue: CueCorrect, wantSamples: 11025},
		{cue: CueWrong, wantSamples: 8820},
		{cue: CueSkip, wantSamples: 4410},
	}

	for _, tt := range tests {
		t.Run(string(tt.cue), func(t *testing.T) {
			clip, err := CueClip(tt.cue)
			require.NoError(t, err)

			assert.Equal(t, MIMETypeWAV, clip.MIMEType)
			assert.Equal(t, string(tt.cue)+".wav", clip.Name)
			require.Len(t, clip.Data, 44+2*tt.wantSamples)

			data := clip.Data
			assert.Equal(t, "RIFF", string(data[0:4]))
			assert.Equal(t, uint32(len(data)-8), binary.LittleEndian.Uint32(data[4:8]))
			assert.Equal(t, "WAVE", string(data[8:12]))
			assert.Equal(t, "fmt ", string(data[12:16]))
			assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[20:22]), "PCM")
			assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[22:24]), "mono")
			assert.Equal(t, uint32(SampleRate), binary.LittleEndian.Uint32(data[24:28]))
			assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(data[34:36]))
			assert.Equal(t, "data", string(data[36:40]))
			assert.Equal(t, uint32(2*tt.wantSamples), binary.LittleEndian.Uint32(data[40:44]))
		})
	}

	_, err := CueClip(Cue("fanfare"))
	assert.ErrorIs(t, err, ErrUnknownCue)
}

func TestToneSamplesStayWithinGain(t *testing.T) {
	for cue, tn := range cueTones {
		samples := tn.samples(SampleRate)
		limit := int(math.Ceil(tn.gain*math.MaxInt16)) + 1

		nonZero := false
		for _, s := range samples {
			v := int(s)
			if v < 0 {
				v = -v
			}
			assert.LessOrEqual(t, v, limit, "cue %s", cue)
			if s != 0 {
				nonZero = true
			}
		}
		assert.True(t, nonZero, "cue %s should not be silent", cue)

		// The gain envelope decays, so the tail is quieter than the head.
		head := peak(samples[:len(samples)/10])
		tail := peak(samples[len(samples)*9/10:])
		assert.Greater(t, head, tail, "cue %s", cue)
	}
}

func TestOscillateRange(t *testing.T) {
	for _, w := range []waveform{waveSine, waveSawtooth, waveTriangle} {
		for i := 0; i < 100; i++ {
			v := oscillate(w, float64(i)/100)
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestParseCue(t *testing.T) {
	c, err := ParseCue("skip")
	require.NoError(t, err)
	assert.Equal(t, CueSkip, c)

	_, err = ParseCue("applause")
	assert.ErrorIs(t, err, ErrUnknownCue)
}

func peak(samples []int16) int {
	m := 0
	for _, s := range samples {
		v := int(s)
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}
