package domain

import "errors"

var (
	// ErrInvalidInput rejects a malformed analyze or outcome request
	// before any side effect happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownDecision is returned when an outcome references a
	// decision id that was never issued.
	ErrUnknownDecision = errors.New("unknown decision")

	// ErrAlreadySealed refuses a second outcome for the same decision;
	// the ledger is left untouched.
	ErrAlreadySealed = errors.New("decision already sealed")

	// ErrUnknownComponent is returned for performance lookups of an id
	// that has never voted.
	ErrUnknownComponent = errors.New("unknown component")
)
