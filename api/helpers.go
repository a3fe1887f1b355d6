package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/coursion/backend/api/apicommon"
	"github.com/coursion/backend/db"
	"github.com/go-chi/jwtauth/v5"
)

// maxDocumentSize limits the size of the documents submitted by the clients.
const maxDocumentSize = 1 << 20

// buildSessionCookie creates the session cookie for the given email. The
// token inside is signed with the API secret, following the JWT
// specification, and is valid for the period of apicommon.SessionExpiration.
func (a *API) buildSessionCookie(email string) (*http.Cookie, error) {
	now := time.Now()
	expiration := now.Add(apicommon.SessionExpiration)
	claims := map[string]any{apicommon.SessionEmailClaim: email}
	jwtauth.SetIssuedAt(claims, now)
	jwtauth.SetExpiry(claims, expiration)
	_, token, err := a.auth.Encode(claims)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     apicommon.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiration,
		MaxAge:   int(apicommon.SessionExpiration.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}, nil
}

// decodeDocument decodes the request body as a JSON object. Anything else
// (arrays, scalars, invalid JSON) is rejected.
func decodeDocument(w http.ResponseWriter, r *http.Request) (db.Document, bool) {
	doc := db.Document{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentSize)).Decode(&doc); err != nil || doc == nil {
		return nil, false
	}
	return doc, true
}
