package tracelog

import (
	"errors"
	"fmt"
)

var (
	ErrIO     = errors.New("trace log i/o failure")
	ErrLocked = fmt.Errorf("%w: trace log is locked by another writer", ErrIO)
	ErrClosed = errors.New("trace log writer is closed")
)
