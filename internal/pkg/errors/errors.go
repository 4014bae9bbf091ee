package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks input rejected before any network call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoTranscript means the captioning service had nothing for the
	// video; we refuse to fabricate content instead of proceeding.
	ErrNoTranscript = errors.New("no transcript available")
	// ErrProvider covers failures of the generative or transcript service.
	ErrProvider = errors.New("provider error")
	// ErrMalformedResponse means provider output could not be recovered
	// as the expected JSON shape even after cleanup.
	ErrMalformedResponse = errors.New("malformed model response")
)
