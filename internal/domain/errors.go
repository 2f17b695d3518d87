package domain

import "errors"

// Sentinel errors shared by services and controllers.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidSlotID   = errors.New("slot id cannot be booked")
	ErrSlotUnavailable = errors.New("slot is not open for booking")
	ErrInvalidRange    = errors.New("invalid date range")
	ErrBackend         = errors.New("booking backend error")
	ErrInvalidLogin    = errors.New("invalid email or password")
)
