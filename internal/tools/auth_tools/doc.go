// Package auth_tools provides the MCP tool for Zoom connection status.
//
// It exposes a single tool:
//
//   - zoom_status: Report whether a Zoom account is connected and, if so,
//     which user is authorized and whether the server runs read-only.
//
// When no credential record exists the tool returns onboarding instructions
// without making any API call, so an unauthorized server still responds
// usefully.
package auth_tools
