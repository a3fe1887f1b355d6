package apicommon

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coursion/backend/errors"
	"github.com/coursion/backend/identity"
	"go.vocdoni.io/dvote/log"
)

// ClaimsFromContext retrieves the verified identity claims from the context
// provided, expected to be the context of a request handled by the identity
// middlewares.
func ClaimsFromContext(ctx context.Context) (*identity.Claims, bool) {
	claims, ok := ctx.Value(ClaimsMetadataKey).(identity.Claims)
	if ok {
		return &claims, ok
	}
	return nil, false
}

// HTTPWriteJSON helper function allows to write a JSON response.
func HTTPWriteJSON(w http.ResponseWriter, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		errors.ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// HTTPWriteMessage writes a JSON response with a human readable message.
func HTTPWriteMessage(w http.ResponseWriter, msg string) {
	HTTPWriteJSON(w, &MessageResponse{Message: msg})
}
