package source

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMatchNotFound = errors.New("match not found")
	ErrQueryFailed   = errors.New("event warehouse query failed")
)
