/*
Package domain contains the core domain models for the onboarding flow.

It defines the session state shared by the stage controller and its hosts,
the stage definitions, and the lifecycle events emitted while a user moves
through the form. This package is kept pure and free of external dependencies
like I/O or persistence.

# Key Entities

  - Stage: An ordered group of fields validated together before moving on.
  - State: The session snapshot (current stage, raw values, status, history).
  - LifecycleHooks: Callbacks fired on stage changes, validations and submits.
*/
package domain
