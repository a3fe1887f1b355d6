// Package errors defines the errors returned by the API to its clients.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// Codes in the 40001-49999 range are the caller's fault, 50001-59999 are the
// server's fault. The code does not have to match the HTTP status.
// NEVER change a published code, only append new ones.
var (
	// Authentication errors (401/403)
	ErrUnauthorized         = Error{Code: 40001, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("unauthorized access"), LogLevel: "info"}
	ErrInvalidFirebaseToken = Error{Code: 40101, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("invalid Firebase token"), LogLevel: "info"}
	ErrEmailMismatch        = Error{Code: 40102, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("invalid token or email mismatch"), LogLevel: "info"}
	ErrForbidden            = Error{Code: 40301, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("forbidden access"), LogLevel: "info"}

	// Validation errors (400)
	ErrMalformedBody     = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid JSON request body")}
	ErrMalformedURLParam = Error{Code: 40010, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid URL parameter")}
	ErrMissingParams     = Error{Code: 40011, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("missing query params")}

	// Enrollment rules (400)
	ErrAlreadyEnrolled = Error{Code: 40020, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("already enrolled"), LogLevel: "info"}
	ErrEnrollmentLimit = Error{Code: 40021, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("you can enroll in maximum 3 courses"), LogLevel: "info"}
	ErrNoSeatsLeft     = Error{Code: 40022, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("no seats left for this course"), LogLevel: "info"}

	// Not found errors (404)
	ErrCourseNotFound     = Error{Code: 40401, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("course not found")}
	ErrEnrollmentNotFound = Error{Code: 40402, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("enrollment not found")}

	// Server errors (500)
	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: failed to process response"), LogLevel: "error"}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error"), LogLevel: "error"}
	ErrInvalidObjectID            = Error{Code: 50003, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("invalid ID format or server error"), LogLevel: "error"}
	ErrSessionTokenFailed         = Error{Code: 50004, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: could not issue session token"), LogLevel: "error"}
)
