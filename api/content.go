package api

import (
	"net/http"

	"github.com/coursion/backend/api/apicommon"
	"github.com/coursion/backend/errors"
)

// rootMessage is the body of the root endpoint.
const rootMessage = "Coursion is cooking"

func (a *API) rootHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(rootMessage)); err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
	}
}

// bannersHandler godoc
// @Summary List banners
// @Tags content
// @Produce json
// @Success 200 {array} db.Document
// @Failure 500 {object} errors.Error
// @Router /banners [get]
func (a *API) bannersHandler(w http.ResponseWriter, _ *http.Request) {
	banners, err := a.db.Banners()
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, banners)
}

// reviewsHandler godoc
// @Summary List reviews
// @Tags content
// @Produce json
// @Success 200 {array} db.Document
// @Failure 500 {object} errors.Error
// @Router /reviews [get]
func (a *API) reviewsHandler(w http.ResponseWriter, _ *http.Request) {
	reviews, err := a.db.Testimonials()
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, reviews)
}

// createReviewHandler godoc
// @Summary Add a review
// @Tags content
// @Accept json
// @Produce json
// @Param request body db.Document true "Review"
// @Success 200 {object} db.InsertResult
// @Failure 400 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /reviews [post]
func (a *API) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	review, ok := decodeDocument(w, r)
	if !ok {
		errors.ErrMalformedBody.Write(w)
		return
	}
	res, err := a.db.AddTestimonial(review)
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, res)
}
