package assets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DirProber resolves image sources against a static site directory.
// Query strings are ignored so cache-busted sources hit the same file.
type DirProber struct {
	root string
	host string
}

// NewDirProber serves probes from root. If host is set, absolute URLs must
// point at it; otherwise any host is treated as the local site.
func NewDirProber(root, host string) *DirProber {
	return &DirProber{root: root, host: host}
}

// Probe succeeds when the source maps to a non-empty regular file under root.
func (p *DirProber) Probe(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("invalid image uri %q: %w", uri, err)
	}
	if u.Host != "" && p.host != "" && !strings.EqualFold(u.Host, p.host) {
		return fmt.Errorf("image %q is not served by %s", uri, p.host)
	}

	// Clean against "/" so ".." cannot escape root.
	rel := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	if rel == "" {
		return fmt.Errorf("image uri %q has no path", uri)
	}

	info, err := os.Stat(filepath.Join(p.root, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("image %q not found", uri)
		}
		return fmt.Errorf("stat image %q: %w", uri, err)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return fmt.Errorf("image %q is not a usable file", uri)
	}
	return nil
}
