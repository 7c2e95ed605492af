// Package middleware wraps a DraftStore with encryption and redaction layers.
//
// Layers compose like HTTP middleware; the outermost runs first on Set and last on Get:
//
//	store := middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns)(
//		middleware.NewEncryptionMiddleware(cfg)(inner))
package middleware

import "github.com/aretw0/portico/pkg/ports"

// Middleware allows wrapping a DraftStore to add behavior.
type Middleware func(ports.DraftStore) ports.DraftStore

// Chain applies middlewares so that the first one listed is the outermost.
func Chain(store ports.DraftStore, mws ...Middleware) ports.DraftStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
