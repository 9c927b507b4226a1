package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with resource identifiers.

// pathVocabulary is the set of fixed segments in Zoom chat API paths. Any
// other segment is a resource ID (channel, message) and gets collapsed.
var pathVocabulary = map[string]bool{
	"chat":     true,
	"users":    true,
	"me":       true,
	"channels": true,
	"messages": true,
	"contacts": true,
	"members":  true,
}

// NormalizePath collapses resource IDs embedded in an API path so the path
// label stays bounded.
//
// Example:
//
//	NormalizePath("/chat/channels/abc123")                    // "/chat/channels/{id}"
//	NormalizePath("/chat/users/me/channels/abc123/members")   // "/chat/users/me/channels/{id}/members"
//	NormalizePath("/chat/users/me/messages")                  // "/chat/users/me/messages"
func NormalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "" || pathVocabulary[segment] {
			continue
		}
		segments[i] = "{id}"
	}
	return strings.Join(segments, "/")
}
