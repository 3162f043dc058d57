package service

import "fmt"

// StoreError reports a failed persistence operation. Message is safe to show
// to clients; Err carries the driver error for logs.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Detail includes the operation and cause, for logging
func (e *StoreError) Detail() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func storeError(op, message string, err error) *StoreError {
	return &StoreError{Op: op, Message: message, Err: err}
}
