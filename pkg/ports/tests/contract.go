package tests

import (
	"context"
	"testing"

	"github.com/aretw0/portico/pkg/ports"
)

// AssetProberContractTest is a reusable test suite that verifies if an adapter complies with ports.AssetProber.
func AssetProberContractTest(t *testing.T, prober ports.AssetProber, loadable, missing []string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Probe_Loadable", func(t *testing.T) {
		for _, uri := range loadable {
			if err := prober.Probe(ctx, uri); err != nil {
				t.Errorf("expected %q to load, got %v", uri, err)
			}
		}
	})

	t.Run("Probe_Missing", func(t *testing.T) {
		for _, uri := range missing {
			if err := prober.Probe(ctx, uri); err == nil {
				t.Errorf("expected %q to fail, got nil", uri)
			}
		}
	})

	t.Run("Probe_Canceled", func(t *testing.T) {
		if len(loadable) == 0 {
			t.Skip("no loadable fixtures")
		}
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		if err := prober.Probe(canceled, loadable[0]); err == nil {
			t.Errorf("expected canceled probe of %q to fail", loadable[0])
		}
	})
}
