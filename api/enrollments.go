package api

import (
	stderrors "errors"
	"net/http"
	"net/url"

	"github.com/coursion/backend/api/apicommon"
	"github.com/coursion/backend/db"
	"github.com/coursion/backend/errors"
	"github.com/coursion/backend/validator"
	"github.com/go-chi/chi/v5"
)

// enrollmentStatusHandler godoc
// @Summary Check an enrollment
// @Description Tell whether the user is enrolled in the course.
// @Tags enrollments
// @Produce json
// @Param email query string true "User email"
// @Param courseId query string true "Course ID"
// @Success 200 {object} apicommon.EnrollmentStatus
// @Failure 400 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /enrollments [get]
func (a *API) enrollmentStatusHandler(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	courseID := r.URL.Query().Get("courseId")
	if email == "" || courseID == "" {
		errors.ErrMissingParams.Write(w)
		return
	}
	enrolled, err := a.db.IsEnrolled(email, courseID)
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, &apicommon.EnrollmentStatus{Enrolled: enrolled})
}

// enrollmentCountHandler godoc
// @Summary Count the enrollments of a course
// @Tags enrollments
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} apicommon.EnrollmentCount
// @Failure 500 {object} errors.Error
// @Router /enrollments/count/{courseId} [get]
func (a *API) enrollmentCountHandler(w http.ResponseWriter, r *http.Request) {
	count, err := a.db.CountCourseEnrollments(chi.URLParam(r, "courseId"))
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, &apicommon.EnrollmentCount{Count: count})
}

// userEnrollmentsHandler godoc
// @Summary List the enrollments of a user
// @Description List the enrollments of the authenticated user. Requesting the
// @Description enrollments of another user is forbidden.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {array} db.Enrollment
// @Failure 401 {object} errors.Error
// @Failure 403 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /enrollments/byUser/{email} [get]
func (a *API) userEnrollmentsHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := apicommon.ClaimsFromContext(r.Context())
	if !ok {
		errors.ErrUnauthorized.Write(w)
		return
	}
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		errors.ErrMalformedURLParam.WithErr(err).Write(w)
		return
	}
	if email != claims.Email {
		errors.ErrForbidden.Write(w)
		return
	}
	enrollments, err := a.db.EnrollmentsByEmail(email)
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, enrollments)
}

// enrollHandler godoc
// @Summary Enroll in a course
// @Description Enroll the user in the course. A user can not enroll twice in
// @Description the same course, nor in more than 3 courses, nor in a course
// @Description without seats left.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body apicommon.EnrollmentRequest true "Enrollment"
// @Success 200 {object} db.InsertResult
// @Failure 400 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /enrollments [post]
func (a *API) enrollHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := validator.ModelFromContext[apicommon.EnrollmentRequest](r.Context())
	if !ok {
		errors.ErrMalformedBody.Write(w)
		return
	}
	enrollment, err := a.db.Enroll(req.Email, req.CourseID)
	if err != nil {
		switch {
		case stderrors.Is(err, db.ErrAlreadyEnrolled):
			errors.ErrAlreadyEnrolled.Write(w)
		case stderrors.Is(err, db.ErrEnrollmentLimit):
			errors.ErrEnrollmentLimit.Write(w)
		case stderrors.Is(err, db.ErrNoSeatsLeft):
			errors.ErrNoSeatsLeft.Write(w)
		case stderrors.Is(err, db.ErrInvalidData):
			errors.ErrMalformedBody.WithErr(err).Write(w)
		default:
			errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		}
		return
	}
	apicommon.HTTPWriteJSON(w, &db.InsertResult{
		Acknowledged: true,
		InsertedID:   enrollment.ID,
	})
}

// deleteEnrollmentHandler godoc
// @Summary Remove an enrollment
// @Tags enrollments
// @Produce json
// @Param email path string true "User email"
// @Param courseId path string true "Course ID"
// @Success 200 {object} apicommon.MessageResponse
// @Failure 404 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /enrollments/{email}/{courseId} [delete]
func (a *API) deleteEnrollmentHandler(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		errors.ErrMalformedURLParam.WithErr(err).Write(w)
		return
	}
	if err := a.db.DelEnrollment(email, chi.URLParam(r, "courseId")); err != nil {
		if stderrors.Is(err, db.ErrNotFound) {
			errors.ErrEnrollmentNotFound.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteMessage(w, "Enrollment removed successfully")
}
