package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/observability"
)

// Fetcher retrieves remote image bytes with a single bounded GET. No
// retries; redirect handling follows net/http defaults.
type Fetcher struct {
	httpc  *http.Client
	logger *observability.Logger
}

// NewFetcher creates a Fetcher whose one attempt is bounded by timeout.
func NewFetcher(timeout time.Duration, logger *observability.Logger) *Fetcher {
	return &Fetcher{
		httpc:  &http.Client{Timeout: timeout},
		logger: logger.WithStage("acquiring"),
	}
}

// ValidateURL checks that raw parses as an absolute URL with a non-empty
// scheme and host. Anything else fails before any network call.
func ValidateURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, domain.ValidationError("URL is empty", nil)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, domain.ValidationError(fmt.Sprintf("invalid URL %q", trimmed), err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, domain.ValidationError(
			fmt.Sprintf("invalid URL %q: absolute URL with scheme and host required", trimmed), nil)
	}

	return u, nil
}

// Fetch validates rawURL and, on success, performs exactly one GET. The
// response body is returned untouched: url-fetched bytes bypass the local
// decode and re-encode applied to uploads.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.RawInput, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return domain.RawInput{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.RawInput{}, domain.FetchError("build fetch request", err)
	}

	resp, err := f.httpc.Do(req)
	if err != nil {
		return domain.RawInput{}, domain.FetchError("failed to fetch image from URL", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.RawInput{}, domain.FetchError(
			fmt.Sprintf("image fetch returned status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RawInput{}, domain.FetchError("read fetch response", err)
	}
	if len(data) == 0 {
		return domain.RawInput{}, domain.FetchError("fetched image is empty", nil)
	}

	f.logger.Debug().Str("url", u.String()).Int("bytes", len(data)).Msg("Fetched image")

	return domain.RawInput{Kind: domain.KindURL, Data: data, SourceURL: u.String()}, nil
}
