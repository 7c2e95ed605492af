/*
Package session keeps one wizard.Controller per visitor session.

The Manager serialises calls for a session with a ref-counted local mutex and,
when configured, a distributed lock so several replicas can share one draft store.
Controllers are cached in memory; a cache miss reopens the stored draft, so a
restarted server resumes every visitor where they left off.
*/
package session
