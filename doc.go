/*
Package portico is the backend of a freelance studio's marketing site: the
multi-step lead-qualification wizard and the image resolver that keeps
pictures on screen when the CDN misbehaves.

# Concept

A visitor fills the lead form one step at a time. Every keystroke is written
to a draft store, so a reload or a crash resumes where they left off. Each step
is validated before the wizard advances, and the final step is delivered once
to a hosted form backend. Images are resolved through a four-stage cascade
(primary, cache-busted primary, fallback, absolute URL) before a placeholder is
shown.

The core (pkg/wizard, pkg/imaging) only talks to ports. Adapters provide draft
stores (memory, file, SQLite, Redis), the form backend client, asset probers,
and the HTTP and MCP surfaces.

# Usage

	cfg := config.Default()
	cfg.Submit.Endpoint = "https://formspree.io/f/abc123"

	app, err := portico.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	handler, err := app.Handler()
	if err != nil {
		log.Fatal(err)
	}
	log.Fatal(http.ListenAndServe(cfg.Listen, handler))

The same App backs the MCP server (app.MCPServer) and the interactive
terminal wizard (portico fill).
*/
package portico
