package portico

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/aretw0/portico/internal/config"
	"github.com/aretw0/portico/internal/logging"
	"github.com/aretw0/portico/pkg/adapters/assets"
	"github.com/aretw0/portico/pkg/adapters/formbackend"
	porticohttp "github.com/aretw0/portico/pkg/adapters/http"
	porticomcp "github.com/aretw0/portico/pkg/adapters/mcp"
	"github.com/aretw0/portico/pkg/adapters/redis"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/aretw0/portico/pkg/imaging"
	"github.com/aretw0/portico/pkg/observability"
	"github.com/aretw0/portico/pkg/ports"
	"github.com/aretw0/portico/pkg/session"
	"github.com/aretw0/portico/pkg/ticker"
	"github.com/aretw0/portico/pkg/wizard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ErrNoEndpoint is returned by the default submitter when no form backend is configured.
var ErrNoEndpoint = errors.New("no submit endpoint configured")

// App wires the configured adapters around the wizard and image core.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Form     *form.Definition
	Store    ports.DraftStore
	Sessions *session.Manager
	Resolver *imaging.Resolver
	Feeds    ticker.Catalog
	Registry *prometheus.Registry
	Metrics  *observability.Metrics

	submitter ports.Submitter
	prober    ports.AssetProber
	closers   []io.Closer
}

// Option overrides an adapter chosen from the configuration.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.Logger = logger
	}
}

// WithStore replaces the configured draft store.
func WithStore(store ports.DraftStore) Option {
	return func(a *App) {
		a.Store = store
	}
}

// WithSubmitter replaces the form backend client.
func WithSubmitter(s ports.Submitter) Option {
	return func(a *App) {
		a.submitter = s
	}
}

// WithProber replaces the asset prober.
func WithProber(p ports.AssetProber) Option {
	return func(a *App) {
		a.prober = p
	}
}

// New validates cfg and builds the application.
func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{Config: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if a.Logger == nil {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		a.Logger = logging.NewWithFormat(os.Stderr, level, logging.Format(cfg.LogFormat))
	}

	a.Form = form.Default()
	if cfg.Form.Definition != "" {
		def, err := form.Load(cfg.Form.Definition)
		if err != nil {
			return nil, err
		}
		a.Form = def
	}

	if a.Store == nil {
		store, closer, err := OpenStore(cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("failed to open draft store: %w", err)
		}
		a.Store = store
		a.closers = append(a.closers, closer)
	}

	if a.submitter == nil {
		a.submitter = a.newSubmitter()
	}
	if a.prober == nil {
		p, err := a.newProber()
		if err != nil {
			return nil, err
		}
		a.prober = p
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = observability.NewMetrics(a.Registry)

	a.Resolver = imaging.NewResolver(a.prober,
		imaging.WithResolverOrigin(cfg.Imaging.Origin),
		imaging.WithProbeTimeout(cfg.Imaging.ProbeTimeout),
		imaging.WithConcurrency(cfg.Imaging.Concurrency),
		imaging.WithResolverLogger(a.Logger),
		imaging.WithObserver(a.Metrics.ImageObserver(a.Logger)),
	)

	sessionOpts := []session.Option{
		session.WithLogger(a.Logger),
		session.WithControllerOptions(
			wizard.WithHooks(a.Metrics.WizardHooks(a.Logger)),
			wizard.WithContactEmail(cfg.Submit.ContactEmail),
		),
	}
	if rs, ok := a.Store.(*redis.Store); ok {
		sessionOpts = append(sessionOpts, session.WithLocker(redis.NewLocker(rs.Client(), redis.DefaultPrefix)))
	} else if cfg.Store.Driver == config.DriverRedis && cfg.Store.RedisAddr != "" {
		// Encrypted drafts hide the concrete store; lock on a dedicated client.
		ls := redis.New(cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB)
		a.closers = append(a.closers, ls)
		sessionOpts = append(sessionOpts, session.WithLocker(redis.NewLocker(ls.Client(), redis.DefaultPrefix)))
	}
	a.Sessions = session.NewManager(a.Form, a.Store, a.submitter, sessionOpts...)

	a.Feeds = ticker.DefaultCatalog()
	if len(cfg.Ticker.Feeds) > 0 {
		a.Feeds = make(ticker.Catalog, len(cfg.Ticker.Feeds))
		for _, f := range cfg.Ticker.Feeds {
			a.Feeds[f.Name] = f
		}
	}
	return a, nil
}

func (a *App) newSubmitter() ports.Submitter {
	if a.Config.Submit.Endpoint == "" {
		a.Logger.Warn("No submit endpoint configured; submissions will fail")
		return unconfiguredSubmitter{}
	}
	return formbackend.New(a.Config.Submit.Endpoint,
		formbackend.WithTimeout(a.Config.Submit.Timeout),
		formbackend.WithLogger(a.Logger),
	)
}

func (a *App) newProber() (ports.AssetProber, error) {
	var origin *url.URL
	if a.Config.Imaging.Origin != "" {
		u, err := url.Parse(a.Config.Imaging.Origin)
		if err != nil {
			return nil, fmt.Errorf("invalid imaging.origin: %w", err)
		}
		origin = u
	}
	if a.Config.Imaging.StaticDir != "" {
		host := ""
		if origin != nil {
			host = origin.Host
		}
		return assets.NewDirProber(a.Config.Imaging.StaticDir, host), nil
	}
	opts := []assets.HTTPOption{
		assets.WithHTTPClient(&http.Client{Timeout: a.Config.Imaging.ProbeTimeout}),
	}
	if origin != nil {
		opts = append(opts, assets.WithBaseURL(origin))
	}
	return assets.NewHTTPProber(opts...), nil
}

// Handler returns the HTTP API.
func (a *App) Handler() (http.Handler, error) {
	return porticohttp.NewHandler(a.Sessions, a.Resolver,
		porticohttp.WithLogger(a.Logger),
		porticohttp.WithFeeds(a.Feeds),
		porticohttp.WithMetrics(a.Registry),
		porticohttp.WithVersion(Version),
		porticohttp.WithCORSOrigin(a.Config.CORSOrigin),
	)
}

// MCPServer returns the MCP tool server.
func (a *App) MCPServer() *porticomcp.Server {
	return porticomcp.NewServer(a.Sessions, a.Resolver,
		porticomcp.WithLogger(a.Logger),
		porticomcp.WithVersion(Version),
	)
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

type unconfiguredSubmitter struct{}

func (unconfiguredSubmitter) Submit(context.Context, domain.SubmissionRecord) error {
	return &domain.SubmissionError{Message: ErrNoEndpoint.Error(), Err: ErrNoEndpoint}
}
