// Package ports defines the core interfaces for the pipeline.
package ports

// Logger defines the interface for logging.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
