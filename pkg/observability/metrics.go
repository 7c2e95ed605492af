package observability

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/imaging"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portico"

// Metrics holds the collectors for wizard and image events.
type Metrics struct {
	StepViews          *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	SubmitDuration     prometheus.Histogram
	ImageResolutions   *prometheus.CounterVec
	ImageAttempts      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StepViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_step_views_total",
			Help:      "Number of times a wizard step was entered.",
		}, []string{"step"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_validation_failures_total",
			Help:      "Invalid fields reported when leaving a step.",
		}, []string{"step", "field"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_submissions_total",
			Help:      "Submit calls by outcome.",
		}, []string{"outcome"}),
		SubmitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wizard_submit_duration_seconds",
			Help:      "Duration of calls to the form backend.",
			Buckets:   prometheus.DefBuckets,
		}),
		ImageResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_resolutions_total",
			Help:      "Terminal image states by status.",
		}, []string{"status"}),
		ImageAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "image_resolution_attempt",
			Help:      "Cascade stage at which an image reached its terminal state.",
			Buckets:   []float64{0, 1, 2, 3},
		}),
	}
	reg.MustRegister(m.StepViews, m.ValidationFailures, m.Submissions, m.SubmitDuration, m.ImageResolutions, m.ImageAttempts)
	return m
}

// WizardHooks logs every wizard event and records it.
func (m *Metrics) WizardHooks(logger *slog.Logger) domain.WizardHooks {
	return domain.WizardHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_enter", "key", e.Key, "step", e.Step, "total", e.Total)
			m.StepViews.WithLabelValues(strconv.Itoa(e.Step)).Inc()
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_leave", "key", e.Key, "step", e.Step)
		},
		OnValidationFailed: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.InfoContext(ctx, "validation_failed", "key", e.Key, "step", e.Step, "fields", len(e.Fields))
			for field := range e.Fields {
				m.ValidationFailures.WithLabelValues(strconv.Itoa(e.Step), field).Inc()
			}
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			attrs := []any{"key", e.Key, "outcome", e.Outcome, "duration", e.Duration}
			if e.Err != nil {
				attrs = append(attrs, "err", e.Err)
			}
			if e.Outcome == domain.SubmitFailed {
				logger.WarnContext(ctx, "submit", attrs...)
			} else {
				logger.InfoContext(ctx, "submit", attrs...)
			}
			m.Submissions.WithLabelValues(string(e.Outcome)).Inc()
			if e.Outcome != domain.SubmitRejected {
				m.SubmitDuration.Observe(e.Duration.Seconds())
			}
		},
	}
}

// ImageObserver records terminal image states.
func (m *Metrics) ImageObserver(logger *slog.Logger) imaging.Observer {
	return func(ctx context.Context, s domain.ImageLoadState) {
		if s.Status == domain.LoadFailed {
			logger.WarnContext(ctx, "image_failed", "src", s.RequestedSource, "attempt", s.Attempt)
		}
		m.ImageResolutions.WithLabelValues(string(s.Status)).Inc()
		m.ImageAttempts.Observe(float64(s.Attempt))
	}
}
