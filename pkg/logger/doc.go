// Package logger provides slog attribute helpers shared by the authclient
// packages.
//
// All helpers return an empty slog.Attr for nil or empty input, so they can be
// passed inline without guarding:
//
//	log.Warn("logout request failed",
//		logger.Component("session"),
//		logger.Error(err),
//	)
//
// Empty attributes are dropped by slog handlers, keeping log records clean.
package logger
