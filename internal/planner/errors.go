package planner

import "errors"

var (
	// ErrUnparsableResponse means no well-formed JSON payload could be
	// extracted from the generation response. Retryable.
	ErrUnparsableResponse = errors.New("unparsable generation response")

	// ErrGenerationFailed means the response parsed but yielded no usable
	// days. Retryable; surfaced to the caller once retries are exhausted.
	ErrGenerationFailed = errors.New("generation produced no usable plan")

	// ErrTransport wraps network or provider failures when calling the
	// generation service. Retryable.
	ErrTransport = errors.New("generation transport failure")

	// ErrNotFound is returned by the repository for unknown plan ids.
	ErrNotFound = errors.New("meal plan not found")
)
