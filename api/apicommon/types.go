package apicommon

// SessionRequest is the body of the session (JWT) request: the email of the
// user and the Firebase ID token that proves it.
// swagger:model SessionRequest
type SessionRequest struct {
	Email string `json:"email" validate:"required"`
	Token string `json:"token" validate:"required"`
}

// SessionResponse is returned once the session cookie is set.
// swagger:model SessionResponse
type SessionResponse struct {
	Success bool `json:"success"`
}

// EnrollmentRequest is the body of the enrollment request.
// swagger:model EnrollmentRequest
type EnrollmentRequest struct {
	Email    string `json:"email" validate:"required,email"`
	CourseID string `json:"courseId" validate:"required,objectid"`
}

// EnrollmentStatus tells whether a user is enrolled in a course.
// swagger:model EnrollmentStatus
type EnrollmentStatus struct {
	Enrolled bool `json:"enrolled"`
}

// EnrollmentCount is the number of enrollments of a course.
// swagger:model EnrollmentCount
type EnrollmentCount struct {
	Count int64 `json:"count"`
}

// MessageResponse carries a human readable result message.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}
