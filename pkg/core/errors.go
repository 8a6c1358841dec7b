package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrMissingID        = errors.New("post info has no id")
	ErrNoBuilder        = errors.New("store has no builder configured")
	ErrUnknownOperation = errors.New("unknown post operation")
)

// OpError reports the failure of a broadcast operation on a single post.
type OpError struct {
	Op  Operation
	ID  ID
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s post %s: %v", e.Op, e.ID, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
