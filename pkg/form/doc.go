/*
Package form describes multi-step forms as a closed set of named, typed fields.

A Definition is loaded from YAML (or the embedded lead-qualification default) and
checked once at construction time. Each Step validates only its own fields, so the
wizard can gate forward progress step by step.

# Validation policy

  - name: trimmed, non-empty, at least MinLength characters (default 2).
  - email: a single "@" and a dotted domain.
  - phone: optional; when present, digits with an optional leading "+" after
    stripping spaces, parentheses and hyphens.
  - longtext: at least MinLength characters (default 20), distinct from non-emptiness.
  - choice: one of the declared options.
*/
package form
