// Package assets provides ports.AssetProber implementations: one that asks an
// HTTP server and one that looks at a local static directory.
package assets
