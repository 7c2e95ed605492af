package api_test

import (
	"context"
	"testing"

	"github.com/aretw0/portico/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := api.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Portico API", doc.Info.Title)
	assert.Empty(t, doc.Servers, "routes are matched on the request path alone")
	for _, p := range []string{"/wizard/sessions", "/wizard/sessions/{id}/submit", "/images/resolve", "/ticker/{name}"} {
		assert.NotNil(t, doc.Paths.Value(p), p)
	}
}
