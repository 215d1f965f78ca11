// Package util provides utility functions for the inventory system.
package util

import "github.com/google/uuid"

// IDGenerator produces globally unique entity identities.
type IDGenerator func() string

// NewID returns a random RFC4122 v4 UUID string.
func NewID() string {
	return uuid.NewString()
}
