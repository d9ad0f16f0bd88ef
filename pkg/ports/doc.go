/*
Package ports defines the driven ports (interfaces) of the onboarding core.

These interfaces decouple the stage controller and its hosts from concrete
storage backends and from whatever consumes an accepted registration.

# Key Interfaces

  - Engine: The stateless form engine used by adapters (HTTP, MCP).
  - StateStore: Keeps session State for the lifetime of a session.
  - DistributedLocker: Provides distributed locking for concurrent session access.
  - SubmissionHandler: Receives the normalized record on a successful submit.
*/
package ports
