package users

import (
	"errors"
)

var (
	// ErrUserNotFound is returned when a user lookup finds no matching row
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfFollow is returned when a user attempts to follow themselves
	ErrSelfFollow = errors.New("you cannot follow yourself")
)

// IsNotFound checks if an error indicates a missing user
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
