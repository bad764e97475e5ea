package proposer

import "errors"

var (
	// ErrUnavailable indicates the Ollama server is unreachable.
	ErrUnavailable = errors.New("proposer server unavailable")

	// ErrTimeout indicates the proposer request exceeded the configured timeout.
	ErrTimeout = errors.New("proposer request timed out")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected proposal structure.
	ErrInvalidOutput = errors.New("invalid proposer output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("proposer retry attempts exhausted")
)
