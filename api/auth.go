package api

import (
	stderrors "errors"
	"net/http"

	"github.com/coursion/backend/api/apicommon"
	"github.com/coursion/backend/errors"
	"github.com/coursion/backend/identity"
	"github.com/coursion/backend/validator"
	"go.vocdoni.io/dvote/log"
)

// sessionHandler godoc
// @Summary Start a session
// @Description Exchange a Firebase ID token for a session cookie. The token
// @Description must be valid and issued for the email provided.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body apicommon.SessionRequest true "Email and Firebase ID token"
// @Success 200 {object} apicommon.SessionResponse
// @Failure 400 {object} errors.Error
// @Failure 401 {object} errors.Error
// @Router /jwt [post]
func (a *API) sessionHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := validator.ModelFromContext[apicommon.SessionRequest](r.Context())
	if !ok {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if a.identity == nil {
		errors.ErrInvalidFirebaseToken.With("identity provider not configured").Write(w)
		return
	}
	claims, err := a.identity.Verify(r.Context(), req.Token)
	if err != nil {
		if stderrors.Is(err, identity.ErrMissingEmail) {
			errors.ErrEmailMismatch.WithErr(err).Write(w)
			return
		}
		errors.ErrInvalidFirebaseToken.WithErr(err).Write(w)
		return
	}
	if claims.Email != req.Email {
		errors.ErrEmailMismatch.Write(w)
		return
	}
	cookie, err := a.buildSessionCookie(claims.Email)
	if err != nil {
		errors.ErrSessionTokenFailed.WithErr(err).Write(w)
		return
	}
	http.SetCookie(w, cookie)
	log.Debugw("session started", "email", claims.Email)
	apicommon.HTTPWriteJSON(w, &apicommon.SessionResponse{Success: true})
}
