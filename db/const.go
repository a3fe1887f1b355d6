package db

import "time"

const (
	// defaultTimeout bounds every single database operation.
	defaultTimeout = 10 * time.Second
	// MaxEnrollmentsPerUser is the number of courses a user can be enrolled in
	// at the same time.
	MaxEnrollmentsPerUser = 3
)
