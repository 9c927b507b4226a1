// Package zoom provides access to the Zoom Team Chat REST API for a single
// authorized user.
//
// The package has two layers. The credential layer (CredentialStore,
// TokenManager) persists the OAuth token set on disk and renews it against
// the Zoom token endpoint before it expires. The request layer (Client)
// executes API calls with bounded retry, exponential backoff and transparent
// re-authentication on a stale bearer token, and classifies terminal
// failures into the error types in errors.go.
//
// Typed wrappers for channels, messages and contacts sit on top of
// Client.Execute and Client.CollectAll; they carry no failure-handling
// logic of their own.
package zoom
