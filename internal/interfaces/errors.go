package interfaces

import "errors"

var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrInvalidCampaignID = errors.New("invalid campaign id")
)

// PersistenceError wraps a fault from the backing store. Its message is for
// logs only and is never returned to API callers.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
