// Package logging provides structured logging utilities for zoomchat.
//
// It centralizes attribute naming and sanitization so every package logs
// through slog the same way.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "chat.send_message")
//	logger.Info("message sent",
//	    logging.Status(logging.StatusSuccess))
//
// Sanitize sensitive data before logging:
//
//	logger.Debug("token renewed",
//	    "access_token", logging.SanitizeToken(token))
//
// # Security Considerations
//
//   - Contact emails are hashed to prevent PII leakage while allowing
//     correlation across log lines
//   - Tokens are never logged directly, only their length
package logging
