package catalog

import (
	"errors"
)

var (
	// ErrReaderNotFound is returned when no reader is registered under the given ID.
	ErrReaderNotFound = errors.New("reader not found")

	// ErrItemNotFound is returned when no item matches the given identifier.
	ErrItemNotFound = errors.New("item not found")

	// ErrNilClock is returned by WithClock when no clock function is supplied.
	ErrNilClock = errors.New("nil clock supplied")
)

// IsNotFoundError reports whether err is one of the two recoverable lookup failures.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrReaderNotFound) || errors.Is(err, ErrItemNotFound)
}
