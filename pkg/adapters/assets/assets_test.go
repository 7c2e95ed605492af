package assets_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/portico/pkg/adapters/assets"
	"github.com/aretw0/portico/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/img/hero.webp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		_, _ = w.Write([]byte("RIFF"))
	})
	mux.HandleFunc("/img/get-only.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG"))
	})
	mux.HandleFunc("/img/soft404.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>not found</html>"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProber_Contract(t *testing.T) {
	srv := newImageServer(t)
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	prober := assets.NewHTTPProber(assets.WithHTTPClient(srv.Client()), assets.WithBaseURL(base))
	tests.AssetProberContractTest(t, prober,
		[]string{"/img/hero.webp", "/img/hero.webp?_cb=1700000000000", srv.URL + "/img/get-only.png"},
		[]string{"/img/missing.webp", "/img/soft404.jpg", "ftp://example.com/a.png"},
	)
}

func TestHTTPProber_RelativeWithoutBase(t *testing.T) {
	err := assets.NewHTTPProber().Probe(context.Background(), "/img/hero.webp")
	assert.Error(t, err)
}

func TestDirProber_Contract(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "img", "hero.webp"), []byte("RIFF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "img", "empty.webp"), nil, 0o644))

	prober := assets.NewDirProber(root, "studio.example")
	tests.AssetProberContractTest(t, prober,
		[]string{"/img/hero.webp", "/img/hero.webp?_cb=42", "https://studio.example/img/hero.webp"},
		[]string{"/img/missing.webp", "/img/empty.webp", "/img", "https://cdn.other/img/hero.webp", "/"},
	)
}

func TestDirProber_CannotEscapeRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "public")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.png"), []byte("x"), 0o644))

	err := assets.NewDirProber(root, "").Probe(context.Background(), "/../secret.png")
	assert.Error(t, err)
}
