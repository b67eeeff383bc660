package errors

// ErrorCode identifies one protocol-level error category.
type ErrorCode int

const (
	// InvalidArgument covers malformed queries, membership violations and
	// duplicate names.
	InvalidArgument ErrorCode = 1
	// NotFound covers unknown languages, problems, users, contests and jobs.
	NotFound ErrorCode = 3
	// RateLimit is returned when a contest submission quota is exhausted.
	RateLimit ErrorCode = 4
	// Internal covers judge environment failures (scratch dir, spawn, data files).
	Internal ErrorCode = 6
)

var reasons = map[ErrorCode]string{
	InvalidArgument: "ERR_INVALID_ARGUMENT",
	NotFound:        "ERR_NOT_FOUND",
	RateLimit:       "ERR_RATE_LIMIT",
	Internal:        "ERR_INTERNAL",
}

var messages = map[ErrorCode]string{
	InvalidArgument: "Invalid argument",
	NotFound:        "Resource not found",
	RateLimit:       "Submission limit exceeded",
	Internal:        "Internal error",
}

// Reason returns the symbolic wire name for the code.
func (c ErrorCode) Reason() string {
	if r, ok := reasons[c]; ok {
		return r
	}
	return "ERR_INTERNAL"
}

// Message returns the default human message for the code.
func (c ErrorCode) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return "Unknown error"
}

// HTTPStatus returns the HTTP status carried by responses with this code.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case InvalidArgument, RateLimit:
		return 400
	case NotFound:
		return 404
	default:
		return 500
	}
}
