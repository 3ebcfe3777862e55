package logger

// Logger provides a standardized logging interface for the Data Tables Go client.
// It defines methods for different log levels (Debug, Info, Warn, Error) to enable
// consistent logging throughout the client library. This interface allows users
// to plug in their preferred logging implementation (e.g., glog, logrus, zap, standard log)
// or use the provided Noop logger to disable logging entirely.
//
// The logger is used throughout the client for:
// - API request/response debugging
// - Batch item failures and batch summaries
// - Retry attempt tracking (rate limiting, backoff waits)
// - Pagination progress
//
// Usage Example:
//
//	// Using with a custom logger implementation
//	client := datatables_go.NewClient(apiToken, datatables_go.WithLogger(myLogger))
//
//	// Using zap
//	client := datatables_go.NewClient(apiToken, datatables_go.WithLogger(logger.NewZap(zapLogger)))
//
//	// Disable logging entirely
//	client := datatables_go.NewClient(apiToken, datatables_go.WithLogger(&logger.Noop{}))
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
