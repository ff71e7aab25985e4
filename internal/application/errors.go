package application

import "errors"

var (
	// ErrInvalidSnapshot is returned when persisted tab data is not a valid tab collection
	ErrInvalidSnapshot = errors.New("invalid persisted tab collection")
)
