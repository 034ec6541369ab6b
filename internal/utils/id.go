package utils

import "github.com/google/uuid"

// NewID returns a random identifier used for object-storage keys.
func NewID() string { return uuid.NewString() }
