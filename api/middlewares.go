package api

import (
	"context"
	"net/http"

	"github.com/coursion/backend/api/apicommon"
	"github.com/coursion/backend/errors"
	"github.com/coursion/backend/identity"
	"github.com/coursion/backend/internal"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.vocdoni.io/dvote/log"
)

// identityGuard is a middleware that rejects the requests without a valid
// identity. The identity is read from the Authorization header (a Firebase ID
// token) or, if the header is not present, from the session cookie issued by
// the session endpoint. The verified claims are added to the request context.
func (a *API) identityGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.requestIdentity(r)
		if err != nil || claims == nil {
			errors.ErrUnauthorized.Write(w)
			return
		}
		ctx := context.WithValue(r.Context(), apicommon.ClaimsMetadataKey, *claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalIdentity is a middleware that adds the identity claims to the
// request context when the request carries a valid credential. Requests
// without credentials, or with invalid ones, are passed through untouched.
func (a *API) optionalIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.requestIdentity(r)
		if err != nil {
			log.Debugw("ignoring invalid credential", "path", r.URL.Path, "error", err)
		}
		if claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), apicommon.ClaimsMetadataKey, *claims))
		}
		next.ServeHTTP(w, r)
	})
}

// requestIdentity returns the claims of the credential of the request. It
// returns nil claims and no error when the request carries no credential.
func (a *API) requestIdentity(r *http.Request) (*identity.Claims, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		token := internal.BearerToken(header)
		if token == "" || a.identity == nil {
			return nil, identity.ErrInvalidToken
		}
		return a.identity.Verify(r.Context(), token)
	}
	cookie, err := r.Cookie(apicommon.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	return a.sessionClaims(cookie.Value)
}

// sessionClaims verifies a session token issued by this server and returns
// the identity it was issued for.
func (a *API) sessionClaims(value string) (*identity.Claims, error) {
	token, err := jwtauth.VerifyToken(a.auth, value)
	if err != nil {
		return nil, err
	}
	if err := jwt.Validate(token, jwt.WithRequiredClaim(apicommon.SessionEmailClaim)); err != nil {
		return nil, err
	}
	raw, _ := token.Get(apicommon.SessionEmailClaim)
	email, ok := raw.(string)
	if !ok || email == "" {
		return nil, identity.ErrMissingEmail
	}
	return &identity.Claims{
		Subject:   token.Subject(),
		Email:     email,
		IssuedAt:  token.IssuedAt(),
		ExpiresAt: token.Expiration(),
	}, nil
}
