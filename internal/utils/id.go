package utils

import "github.com/google/uuid"

// NewTabID returns a random, collision-resistant identifier for a new tab.
func NewTabID() string {
	return uuid.NewString()
}
