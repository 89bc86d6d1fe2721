package contract

import "errors"

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrUnknownStage    = errors.New("unknown session stage")
)
