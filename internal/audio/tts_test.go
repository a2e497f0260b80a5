package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleTTSSynthesize(t *testing.T) {
	var gotQuery map[string]string
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":       q.Get("q"),
			"tl":      q.Get("tl"),
			"client":  q.Get("client"),
			"textlen": q.Get("textlen"),
		}
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake-mp3"))
	}))
	defer srv.Close()

	tts := NewGoogleTTS(srv.URL, "tr", srv.Client())
	data, err := tts.Synthesize(context.Background(), "ÇÖ")

	require.NoError(t, err)
	assert.Equal(t, []byte("ID3fake-mp3"), data)
	assert.Equal(t, "ÇÖ", gotQuery["q"])
	assert.Equal(t, "tr", gotQuery["tl"])
	assert.Equal(t, "tw-ob", gotQuery["client"])
	assert.Equal(t, "2", gotQuery["textlen"])
	assert.Contains(t, gotUA, "Mozilla")
}

func TestGoogleTTSErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "EMPTY" {
			return
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tts := NewGoogleTTS(srv.URL, "tr", srv.Client())

	_, err := tts.Synthesize(context.Background(), "BA")
	assert.ErrorIs(t, err, ErrSynthesis)
	assert.Contains(t, err.Error(), "429")

	_, err = tts.Synthesize(context.Background(), "EMPTY")
	assert.ErrorIs(t, err, ErrSynthesis)

	_, err = tts.Synthesize(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyText)
}
