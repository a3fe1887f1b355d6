// Package apicommon provides common types, constants, and helper functions for the API.
package apicommon

import "time"

// MetadataKey is a type to define the key for the metadata stored in the
// context.
type MetadataKey string

// ClaimsMetadataKey is the key used to store the verified identity claims in
// the context.
const ClaimsMetadataKey MetadataKey = "identity"

const (
	// SessionCookieName is the cookie that carries the session token.
	SessionCookieName = "token"
	// SessionExpiration is the lifetime of the session token.
	SessionExpiration = 30 * 24 * time.Hour // 30 days
	// SessionEmailClaim is the claim of the session token holding the email.
	SessionEmailClaim = "email"
)
