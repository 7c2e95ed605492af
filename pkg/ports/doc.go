/*
Package ports defines the driven ports (interfaces) of portico.

These interfaces decouple the wizard and image cascades from their collaborators,
so the core logic runs the same against a browser-facing HTTP adapter, a terminal
prompt, or a test double.

# Key Interfaces

  - DraftStore: durable key-value storage for in-progress form drafts.
  - Submitter: delivers a finished SubmissionRecord to the external form backend.
  - AssetProber: checks whether an image URI can be loaded.
  - DistributedLocker: serialises access to one session across replicas.
*/
package ports
