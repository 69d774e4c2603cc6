package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"pd6/config"
)

// ErrTooLarge is returned when fetched schema exceeds configured size.
var ErrTooLarge = errors.New("schema is too large")

// Limits restricts schema retrieval.
type Limits struct {
	Timeout time.Duration
	MaxSize int64
	// Token is sent as bearer authorization to http(s) locations.
	Token config.SecretString
}

// LimitsFrom returns retrieval limits from configuration.
func LimitsFrom(cfg *config.ValidateConfig) Limits {
	return Limits{Timeout: cfg.Timeout, MaxSize: cfg.MaxSchemaSize, Token: cfg.AuthToken}
}

// Fetch reads schema document from http(s) URL, file URL or local path.
func Fetch(ctx context.Context, location string, limits Limits) ([]byte, error) {
	u, err := url.Parse(location)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return fetchHTTP(ctx, u.String(), limits)
		case "file":
			return readFile(u.Path, limits.MaxSize)
		}
	}
	return readFile(location, limits.MaxSize)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) == 0 {
				return nil
			}
			// credentials must not leak to other hosts
			if req.URL.Host != via[0].URL.Host {
				return errors.New("redirect to different host blocked")
			}
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			return nil
		},
	}
}

func fetchHTTP(ctx context.Context, location string, limits Limits) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/schema+json, application/json")
	if auth := limits.Token.Authorization(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := newHTTPClient(limits.Timeout).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", location, resp.StatusCode)
	}
	return readLimited(resp.Body, location, limits.MaxSize)
}

func readFile(name string, maxSize int64) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open schema: %w", err)
	}
	defer f.Close()

	if fi, err := f.Stat(); err == nil && maxSize > 0 && fi.Size() > maxSize {
		return nil, fmt.Errorf("%w '%s': %d bytes", ErrTooLarge, name, fi.Size())
	}
	return readLimited(f, name, maxSize)
}

func readLimited(r io.Reader, name string, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read schema '%s': %w", name, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w '%s': more than %d bytes", ErrTooLarge, name, maxSize)
	}
	return data, nil
}
