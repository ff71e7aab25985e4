package storage

import "errors"

var (
	// ErrUnknownDriver is returned when the configured storage driver is not supported
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrInvalidKey is returned for keys that cannot be mapped to a storage location
	ErrInvalidKey = errors.New("invalid storage key")
)
