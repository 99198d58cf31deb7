// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeKstatRead,
//	    "failed to read zone kstats",
//	    cmdErr,
//	    map[string]interface{}{
//	        "module":   "memory_cap",
//	        "instance": 14,
//	    },
//	)
package errors
