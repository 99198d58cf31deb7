// Package logging provides structured logging utilities for cmon-agent components.
//
// # Overview
//
// This package wraps the standard library slog package with agent-specific defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("cmon-agentd", "v1.0.0")
//
//	    // Use slog as normal
//	    slog.Info("processing request", "id", "req-123")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("collector", "v2.0.0", "debug")
//	logger.Info("pass starting", "guests", 12)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cmon", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug cmon snapshot --gz
//	LOG_LEVEL=error cmon-agentd
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2026-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "server started",
//	    "module": "cmon-agentd",
//	    "version": "v1.0.0",
//	    "port": 9163
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2026-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "main.handleMetrics",
//	        "file": "server.go",
//	        "line": 45
//	    },
//	    "msg": "pass complete",
//	    "module": "cmon-agentd",
//	    "version": "v1.0.0"
//	}
//
// # Integration
//
// This package is used by:
//   - pkg/api - daemon logging
//   - pkg/cli - CLI command logging
//   - pkg/collector - metric production logging
//   - pkg/snapshotter - collection pass logging
//   - pkg/server - HTTP request logging
//
// All components share consistent logging format and configuration.
package logging
