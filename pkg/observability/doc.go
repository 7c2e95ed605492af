/*
Package observability turns wizard and image events into structured logs and
Prometheus metrics.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.WizardHooks(logger)
	resolver := imaging.NewResolver(prober, imaging.WithObserver(metrics.ImageObserver(logger)))
*/
package observability
