package web

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"studyhub/internal/domain"
	"studyhub/internal/httpx"
	"studyhub/internal/providers"
)

// Provider fetches the catalog JSON over HTTP(S) with retries.
type Provider struct {
	URL   string
	HTTP  *http.Client
	Retry httpx.RetryConfig
}

func New(rawURL string, timeout time.Duration) Provider {
	return Provider{
		URL:   rawURL,
		HTTP:  &http.Client{Timeout: timeout},
		Retry: httpx.DefaultRetryConfig(),
	}
}

func (p Provider) Name() string {
	if u, err := url.Parse(p.URL); err == nil && u.Host != "" {
		return "web:" + u.Host
	}
	return "web"
}

// ListCourses fetches the catalog. A URL path ending in ".br" is read as
// brotli-compressed JSON.
func (p Provider) ListCourses(ctx context.Context) ([]domain.Course, error) {
	client := p.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	buildReq := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}
	_, body, err := httpx.DoWithRetry(ctx, client, buildReq, p.Retry)
	if err != nil {
		return nil, err
	}

	courses, err := providers.Decode(bytes.NewReader(body), providers.IsBrotli(p.path()))
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []domain.Course{}
	}
	return courses, nil
}

func (p Provider) path() string {
	if u, err := url.Parse(p.URL); err == nil {
		return u.Path
	}
	return p.URL
}

var _ providers.CatalogProvider = Provider{}
