package api

import (
	"net/http"

	"github.com/coursion/backend/api/apicommon"
	"github.com/coursion/backend/errors"
)

// usersHandler godoc
// @Summary List users
// @Description Get every stored user profile
// @Tags users
// @Produce json
// @Success 200 {array} db.Document
// @Failure 500 {object} errors.Error
// @Router /users [get]
func (a *API) usersHandler(w http.ResponseWriter, _ *http.Request) {
	users, err := a.db.Users()
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, users)
}

// createUserHandler godoc
// @Summary Store a user
// @Description Store a user profile. The document is stored as received.
// @Tags users
// @Accept json
// @Produce json
// @Param request body db.Document true "User profile"
// @Success 200 {object} db.InsertResult
// @Failure 400 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /users [post]
func (a *API) createUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := decodeDocument(w, r)
	if !ok {
		errors.ErrMalformedBody.Write(w)
		return
	}
	res, err := a.db.AddUser(user)
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, res)
}
