// services/errors.go
package services

import "errors"

var (
	// ErrUnknownAction means the action has no entry in the points table
	// and no explicit point value was supplied.
	ErrUnknownAction = errors.New("unknown action")

	// ErrRecoveryComplete means a recovery action was submitted against a
	// recovery that has already closed.
	ErrRecoveryComplete = errors.New("recovery already complete")

	// ErrStreakNotBroken means recovery was requested for a streak that
	// has not actually broken.
	ErrStreakNotBroken = errors.New("streak is not broken")

	// ErrRecoveryOpen means a recovery already exists for the streak.
	ErrRecoveryOpen = errors.New("recovery already in progress for this streak")
)
