package db

import "fmt"

var (
	ErrNotFound    = fmt.Errorf("not found")
	ErrInvalidData = fmt.Errorf("invalid data provided")
	ErrInvalidID   = fmt.Errorf("invalid object ID")

	// enrollment rules
	ErrAlreadyEnrolled = fmt.Errorf("already enrolled")
	ErrEnrollmentLimit = fmt.Errorf("enrollment limit reached")
	ErrNoSeatsLeft     = fmt.Errorf("no seats left")
)
