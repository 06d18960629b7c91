package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingState means no current ticket could be found or seeded for
	// a conversation. Handlers normally recover by re-seeding, so seeing
	// this error indicates a store failure.
	ErrMissingState = errors.New("no booking state for conversation")

	// ErrMalformedSubmission covers every invalid dialog-submit payload.
	ErrMalformedSubmission = errors.New("malformed booking submission")

	ErrEmptyTravelerName = fmt.Errorf("%w: traveler name is required", ErrMalformedSubmission)
	ErrUnknownRoute      = fmt.Errorf("%w: selected route is not among the offered routes", ErrMalformedSubmission)

	// ErrModelUnavailable means the language model failed twice in a row.
	ErrModelUnavailable = errors.New("language model unavailable")
)
