// Package identity verifies the credentials issued by the external identity
// provider (Firebase Authentication) and exposes the verified claims.
package identity

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

var (
	// ErrInvalidToken is returned for any malformed, expired or wrongly
	// signed credential.
	ErrInvalidToken = fmt.Errorf("invalid identity token")
	// ErrMissingEmail is returned when a valid credential has no email.
	ErrMissingEmail = fmt.Errorf("identity token has no email")
)

// Claims are the verified claims of an identity token.
type Claims struct {
	Subject       string    `json:"sub"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Name          string    `json:"name,omitempty"`
	Picture       string    `json:"picture,omitempty"`
	IssuedAt      time.Time `json:"iat"`
	ExpiresAt     time.Time `json:"exp"`
}

// Verifier checks an identity token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// serviceAccount is the subset of a Firebase service account key used by the
// backend.
type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

// ProjectIDFromServiceAccount decodes a base64 encoded service account key
// (the JSON file downloaded from the Firebase console) and returns its project
// ID.
func ProjectIDFromServiceAccount(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("service account is not base64 encoded: %w", err)
	}
	var sa serviceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return "", fmt.Errorf("cannot decode service account: %w", err)
	}
	if sa.ProjectID == "" {
		return "", fmt.Errorf("service account has no project_id")
	}
	return sa.ProjectID, nil
}
