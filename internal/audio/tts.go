package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Synthesizer turns text into encoded speech.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

const (
	ttsRequestTimeout = 10 * time.Second
	// maxSpeechBytes bounds a single synthesised clip.
	maxSpeechBytes = 1 << 20
	ttsUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// GoogleTTS synthesises speech with the Google Translate text-to-speech
// endpoint. It needs no API key and returns MP3 data.
type GoogleTTS struct {
	baseURL  string
	language string
	client   *http.Client
}

var _ Synthesizer = (*GoogleTTS)(nil)

// NewGoogleTTS creates a GoogleTTS client speaking language (e.g. "tr").
// A nil client selects one with a short timeout.
func NewGoogleTTS(baseURL, language string, client *http.Client) *GoogleTTS {
	if client == nil {
		client = &http.Client{Timeout: ttsRequestTimeout}
	}
	return &GoogleTTS{baseURL: baseURL, language: language, client: client}
}

// Synthesize fetches speech for text.
func (g *GoogleTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", g.language)
	params.Set("client", "tw-ob")
	params.Set("textlen", strconv.Itoa(len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrSynthesis, err)
	}
	// The endpoint rejects requests without a browser user agent.
	req.Header.Set("User-Agent", ttsUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch audio: %w", ErrSynthesis, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrSynthesis, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSpeechBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read audio: %w", ErrSynthesis, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty audio", ErrSynthesis)
	}
	return data, nil
}
