/*
Package domain contains the core models of the portico lead wizard and image resolver.

It defines the entities both state machines operate on. The package is kept pure and
free of I/O so the wizard and image cascades can be tested without a browser,
a network or a store.

# Key Entities

  - Draft: the in-progress answers of a multi-step form (fields, step, selected options).
  - SubmissionRecord: the flattened draft plus metadata sent to the form backend.
  - ImageLoadState: a snapshot of one image's position in the fallback cascade.
  - WizardHooks: observability callbacks fired by the wizard controller.
*/
package domain
