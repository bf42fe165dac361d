package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Fetch failure modes. Callers branch with errors.Is.
var (
	ErrInvalidURL = errors.New("fetcher: invalid url")
	ErrTimeout    = errors.New("fetcher: fetch timed out")
	ErrTooLarge   = errors.New("fetcher: resource exceeds size limit")
	ErrNetwork    = errors.New("fetcher: network failure")
)

// Resource is a fetched payload with its declared content type, if any.
type Resource struct {
	Data        []byte
	ContentType string
}

// ImageFetcher retrieves remote images with a hard per-fetch deadline and an
// incremental size cap. It performs no retries.
type ImageFetcher struct {
	client   *http.Client
	maxBytes int64
	timeout  time.Duration
}

// NewImageFetcher constructs a fetcher. maxBytes bounds the payload size and
// timeout bounds the whole retrieval including body streaming.
func NewImageFetcher(maxBytes int64, timeout time.Duration) *ImageFetcher {
	return &ImageFetcher{
		client:   &http.Client{},
		maxBytes: maxBytes,
		timeout:  timeout,
	}
}

// Fetch downloads the resource at rawURL. The size check runs while the body
// streams, so an oversized payload aborts mid-transfer instead of after a
// full download.
func (f *ImageFetcher) Fetch(ctx context.Context, rawURL string) (*Resource, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, translate(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: declared %d bytes, limit %d", ErrTooLarge, resp.ContentLength, f.maxBytes)
	}

	limited := io.LimitReader(resp.Body, f.maxBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, translate(err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, f.maxBytes)
	}

	return &Resource{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

func validateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
