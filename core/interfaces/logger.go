package interfaces

// Logger defines the interface for logging throughout the application.
// The core only ever logs through it; the concrete implementation lives in
// infrastructure/logger.
//
// Example usage:
//
//	logger.Info("Source settled", map[string]interface{}{
//		"source": "bing",
//		"results": 7,
//	})
//
//	logger.Debug("Source returned a login page", map[string]interface{}{
//		"source": "zhihu",
//		"reason": "login vocabulary",
//	})
type Logger interface {
	// Debug logs detailed troubleshooting information, including expected degradations.
	Debug(msg string, fields map[string]interface{})

	// Info logs general informational messages.
	Info(msg string, fields map[string]interface{})

	// Warn logs conditions that degrade the result, such as total source exhaustion.
	Warn(msg string, fields map[string]interface{})

	// Error logs failures that need attention.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. Useful when a caller passes no logger.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
