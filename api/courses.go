package api

import (
	stderrors "errors"
	"net/http"

	"github.com/coursion/backend/api/apicommon"
	"github.com/coursion/backend/db"
	"github.com/coursion/backend/errors"
	"github.com/go-chi/chi/v5"
)

// coursesHandler godoc
// @Summary List courses
// @Description List the courses. When the request is authenticated only the
// @Description courses created by the authenticated user are returned.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} db.Document
// @Failure 500 {object} errors.Error
// @Router /courses [get]
func (a *API) coursesHandler(w http.ResponseWriter, r *http.Request) {
	var email string
	if claims, ok := apicommon.ClaimsFromContext(r.Context()); ok {
		email = claims.Email
	}
	courses, err := a.db.Courses(email)
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, courses)
}

// createCourseHandler godoc
// @Summary Create a course
// @Description Store a new course. If the request is authenticated and the
// @Description course has no email, the email of the caller is set.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body db.Document true "Course"
// @Success 200 {object} db.InsertResult
// @Failure 400 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /courses [post]
func (a *API) createCourseHandler(w http.ResponseWriter, r *http.Request) {
	course, ok := decodeDocument(w, r)
	if !ok {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if claims, ok := apicommon.ClaimsFromContext(r.Context()); ok {
		if email, _ := course["email"].(string); email == "" {
			course["email"] = claims.Email
		}
	}
	res, err := a.db.AddCourse(course)
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, res)
}

// courseHandler godoc
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} db.Document
// @Failure 404 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /courses/{id} [get]
func (a *API) courseHandler(w http.ResponseWriter, r *http.Request) {
	course, err := a.db.Course(chi.URLParam(r, "id"))
	if err != nil {
		courseError(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, course)
}

// updateCourseHandler godoc
// @Summary Update a course
// @Description Merge the fields provided into the course. The ID of the
// @Description course is never changed.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body db.Document true "Fields to update"
// @Success 200 {object} apicommon.MessageResponse
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /courses/{id} [put]
func (a *API) updateCourseHandler(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeDocument(w, r)
	if !ok {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if err := a.db.UpdateCourse(chi.URLParam(r, "id"), fields); err != nil {
		courseError(err).Write(w)
		return
	}
	apicommon.HTTPWriteMessage(w, "Course updated successfully")
}

// deleteCourseHandler godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} apicommon.MessageResponse
// @Failure 404 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /courses/{id} [delete]
func (a *API) deleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.db.DelCourse(chi.URLParam(r, "id")); err != nil {
		courseError(err).Write(w)
		return
	}
	apicommon.HTTPWriteMessage(w, "Course deleted successfully")
}

// courseError maps the storage errors of the course operations to API errors.
func courseError(err error) errors.Error {
	switch {
	case stderrors.Is(err, db.ErrNotFound):
		return errors.ErrCourseNotFound
	case stderrors.Is(err, db.ErrInvalidID):
		return errors.ErrInvalidObjectID
	case stderrors.Is(err, db.ErrInvalidData):
		return errors.ErrMalformedBody.With("no fields to update")
	default:
		return errors.ErrGenericInternalServerError.WithErr(err)
	}
}
