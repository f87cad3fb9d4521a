package translate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator calls the public web translation endpoint.
type GoogleTranslator struct {
	baseURL string
	client  *http.Client
}

func NewGoogleTranslator(baseURL string, timeout time.Duration) *GoogleTranslator {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GoogleTranslator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, source, target string) Result {
	if strings.TrimSpace(text) == "" {
		return Failure(ErrEmptyInput)
	}
	if source == "" {
		source = "auto"
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", source)
	query.Set("tl", target)
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Failure(err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return Failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Failure(fmt.Errorf("translate api returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Failure(err)
	}
	translated, err := parseGoogleResponse(body)
	if err != nil {
		return Failure(err)
	}
	return Success(translated)
}

// parseGoogleResponse concatenates the translated segments of a response shaped
// like [[["translated","source",...],...],...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translate response")
	}
	segments, ok := payload[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected translate response shape")
	}
	var b strings.Builder
	for _, segment := range segments {
		parts, ok := segment.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}
