package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPProber checks images by issuing HEAD requests, falling back to GET when
// the server does not allow HEAD.
type HTTPProber struct {
	client *http.Client
	base   *url.URL
}

// HTTPOption configures an HTTPProber.
type HTTPOption func(*HTTPProber)

// WithHTTPClient sets the client used for probes.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(p *HTTPProber) {
		p.client = c
	}
}

// WithBaseURL resolves relative sources against base.
func WithBaseURL(base *url.URL) HTTPOption {
	return func(p *HTTPProber) {
		p.base = base
	}
}

// NewHTTPProber creates a prober using http.DefaultClient.
func NewHTTPProber(opts ...HTTPOption) *HTTPProber {
	p := &HTTPProber{client: http.DefaultClient}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe succeeds when the asset answers 2xx with a non-HTML body.
func (p *HTTPProber) Probe(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := p.resolve(uri)
	if err != nil {
		return err
	}

	resp, err := p.do(ctx, http.MethodHead, target)
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		resp.Body.Close()
		resp, err = p.do(ctx, http.MethodGet, target)
	}
	if err != nil {
		return fmt.Errorf("probe %s: %w", target, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe %s: status %d", target, resp.StatusCode)
	}
	// Soft-404 pages answer 200 with HTML.
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		return fmt.Errorf("probe %s: not an image (%s)", target, resp.Header.Get("Content-Type"))
	}
	return nil
}

func (p *HTTPProber) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*")
	return p.client.Do(req)
}

func (p *HTTPProber) resolve(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid image uri %q: %w", uri, err)
	}
	if u.IsAbs() {
		if u.Scheme != "http" && u.Scheme != "https" {
			return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
		}
		return u.String(), nil
	}
	if p.base == nil {
		return "", fmt.Errorf("relative image uri %q needs a base URL", uri)
	}
	return p.base.ResolveReference(u).String(), nil
}
