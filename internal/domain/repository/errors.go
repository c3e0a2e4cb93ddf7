package repository

import "errors"

// Sentinel results of the conditional writes. Implementations must return these (optionally
// wrapped) so callers can tell a lost race from an infrastructure failure.
var (
	ErrNotFound                = errors.New("not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrAlreadyParticipating    = errors.New("already participating")
	ErrCapacityReached         = errors.New("capacity reached")
	ErrNotParticipating        = errors.New("not participating")
	ErrCapacityBelowEnrollment = errors.New("capacity below current enrollment")
)
