package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 12000-12999: Problem & test case errors
// 13000-13999: Execution & run errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalServerError ErrorCode = 10001
	InvalidParams       ErrorCode = 10002
	NotFound            ErrorCode = 10003
	ServiceUnavailable  ErrorCode = 10007

	// Validation & config errors (10300-10399)
	ValidationFailed ErrorCode = 10300
	InvalidFormat    ErrorCode = 10301
	InvalidValue     ErrorCode = 10302
	ConfigLoadFailed ErrorCode = 10310
	ConfigSaveFailed ErrorCode = 10311

	// ========== Problem & Test Case Errors (12000-12999) ==========

	// Problem (12000-12099)
	ProblemNotLoaded        ErrorCode = 12000
	InteractiveNotSupported ErrorCode = 12001
	ProblemIngestFailed     ErrorCode = 12002

	// Test cases (12100-12199)
	TestCaseNotFound    ErrorCode = 12100
	TestCaseEmpty       ErrorCode = 12101
	TestCaseWriteFailed ErrorCode = 12102
	TestCaseReadFailed  ErrorCode = 12103

	// ========== Execution Errors (13000-13999) ==========

	// Run lifecycle (13000-13099)
	RunInProgress        ErrorCode = 13000
	WorkspaceUnavailable ErrorCode = 13001
	SolutionNotFound     ErrorCode = 13002

	// Process (13100-13199)
	SpawnFailed     ErrorCode = 13100
	ExecutionFailed ErrorCode = 13101
	InvalidCommand  ErrorCode = 13102
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	// System & Common
	Success:             "Success",
	InternalServerError: "Internal server error",
	InvalidParams:       "Invalid parameters",
	NotFound:            "Resource not found",
	ServiceUnavailable:  "Service temporarily unavailable",

	// Validation & config
	ValidationFailed: "Validation failed",
	InvalidFormat:    "Invalid format",
	InvalidValue:     "Invalid value",
	ConfigLoadFailed: "Failed to load settings",
	ConfigSaveFailed: "Failed to save settings",

	// Problem
	ProblemNotLoaded:        "No problem is loaded",
	InteractiveNotSupported: "Interactive problems are not supported",
	ProblemIngestFailed:     "Failed to ingest problem",

	// Test cases
	TestCaseNotFound:    "Test case not found",
	TestCaseEmpty:       "No test cases found",
	TestCaseWriteFailed: "Failed to write test case",
	TestCaseReadFailed:  "Failed to read test case",

	// Run lifecycle
	RunInProgress:        "A run is already in progress",
	WorkspaceUnavailable: "Workspace root is not available",
	SolutionNotFound:     "Solution file not found",

	// Process
	SpawnFailed:     "Failed to start solution process",
	ExecutionFailed: "Solution execution failed",
	InvalidCommand:  "Invalid interpreter command",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// HTTPStatus returns the recommended HTTP status code for the error code
func (c ErrorCode) HTTPStatus() int {
	switch {
	case c == Success:
		return 200
	case c == NotFound, c == ProblemNotLoaded, c == TestCaseNotFound:
		return 404
	case c == RunInProgress:
		return 409
	case c == ServiceUnavailable:
		return 503
	case c >= 10300 && c < 10310: // Validation errors
		return 400
	case c == InvalidParams:
		return 400
	default:
		return 500
	}
}

// IsPrecondition reports whether the code describes a user-facing precondition
// failure rather than an infrastructure failure.
func (c ErrorCode) IsPrecondition() bool {
	switch c {
	case ProblemNotLoaded, InteractiveNotSupported, TestCaseNotFound, TestCaseEmpty,
		RunInProgress, WorkspaceUnavailable, SolutionNotFound:
		return true
	}
	return false
}
