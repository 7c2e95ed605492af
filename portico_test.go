package portico_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/portico"
	"github.com/aretw0/portico/internal/config"
	"github.com/aretw0/portico/internal/logging"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/persistence/middleware"
	"github.com/aretw0/portico/pkg/ticker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSubmitter struct{}

func (nopSubmitter) Submit(context.Context, domain.SubmissionRecord) error { return nil }

type missingProber struct{}

func (missingProber) Probe(context.Context, string) error { return errors.New("missing") }

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	return cfg
}

func TestNew_ServesWizardAndMetrics(t *testing.T) {
	app, err := portico.New(memoryConfig(),
		portico.WithLogger(logging.NewNop()),
		portico.WithSubmitter(nopSubmitter{}),
		portico.WithProber(missingProber{}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	h, err := app.Handler()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wizard/sessions", nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/images/resolve", strings.NewReader(`{"src":"/a.png"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"failed"`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `portico_wizard_step_views_total{step="1"} 1`)
	assert.Contains(t, body, `portico_image_resolutions_total{status="failed"} 1`)
	assert.Contains(t, body, "go_goroutines")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Contains(t, w.Body.String(), portico.Version)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Driver = "tape"
	_, err := portico.New(cfg)
	assert.ErrorContains(t, err, "tape")

	cfg = memoryConfig()
	cfg.LogLevel = "chatty"
	_, err = portico.New(cfg)
	assert.ErrorContains(t, err, "chatty")
}

func TestNew_UnconfiguredEndpointFailsSubmission(t *testing.T) {
	app, err := portico.New(memoryConfig(), portico.WithLogger(logging.NewNop()))
	require.NoError(t, err)

	_, ctrl, err := app.Sessions.Start(context.Background())
	require.NoError(t, err)
	ctx := context.Background()
	for name, value := range map[string]string{"name": "Ada Lovelace", "email": "ada@example.com"} {
		require.NoError(t, ctrl.UpdateField(ctx, name, value))
	}
	require.NoError(t, ctrl.GoNext(ctx))
	require.NoError(t, ctrl.UpdateField(ctx, "project_type", "Redesign"))
	require.NoError(t, ctrl.GoNext(ctx))
	_, err = ctrl.ToggleOption(ctx, "Faster site")
	require.NoError(t, err)
	require.NoError(t, ctrl.UpdateField(ctx, "budget", "Under $2k"))
	require.NoError(t, ctrl.UpdateField(ctx, "timeline", "Flexible"))
	require.NoError(t, ctrl.GoNext(ctx))
	require.NoError(t, ctrl.UpdateField(ctx, "description", "Refresh the bakery site before summer."))

	err = ctrl.Submit(ctx)
	assert.ErrorIs(t, err, portico.ErrNoEndpoint)
	assert.Equal(t, domain.PhaseEditing, ctrl.Phase())
}

func TestNew_CustomFeedsAndForm(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "form.yaml")
	require.NoError(t, os.WriteFile(def, []byte(`
id: callback
form_type: callback
title: Request a call
subject: "Callback for {name}"
steps:
  - title: Contact
    fields:
      - name: name
        label: Name
        kind: name
        required: true
      - name: email
        label: Email
        kind: email
        required: true
`), 0o644))

	cfg := memoryConfig()
	cfg.Form.Definition = def
	cfg.Ticker.Feeds = append(cfg.Ticker.Feeds, ticker.DefaultCatalog()["testimonials"])
	app, err := portico.New(cfg, portico.WithLogger(logging.NewNop()))
	require.NoError(t, err)

	assert.Equal(t, "callback", app.Form.ID)
	assert.Len(t, app.Feeds, 1)
	_, err = app.Feeds.Lookup("testimonials")
	assert.NoError(t, err)
}

func newKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(key)
}

func TestOpenStore_EncryptsAtRest(t *testing.T) {
	ctx := context.Background()
	cfg := config.StoreConfig{
		Driver:        config.DriverSQLite,
		Path:          filepath.Join(t.TempDir(), "drafts.db"),
		EncryptionKey: newKey(t),
	}

	store, closer, err := portico.OpenStore(cfg)
	require.NoError(t, err)
	draft := domain.NewDraft()
	draft.Set("email", "ada@example.com")
	require.NoError(t, store.Set(ctx, "k", draft))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Fields["email"])
	require.NoError(t, closer.Close())

	cfg.EncryptionKey = ""
	raw, closer, err := portico.OpenStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })
	stored, err := raw.Get(ctx, "k")
	require.NoError(t, err)
	assert.NotContains(t, stored.Fields, "email")
	assert.Contains(t, stored.Fields, middleware.EnvelopeField)
}

func TestOpenStore_BadKey(t *testing.T) {
	_, _, err := portico.OpenStore(config.StoreConfig{Driver: config.DriverMemory, EncryptionKey: "short"})
	assert.Error(t, err)
}
