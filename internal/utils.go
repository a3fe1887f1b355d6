// Package internal holds small helpers shared by the storage, validation and
// API packages.
package internal

import (
	"regexp"
	"strings"
)

const (
	EmailRegexTemplate    = `^[\w.\+\.\-]+@([\w\-]+\.)+[\w]{2,}$`
	ObjectIDRegexTemplate = `^[0-9a-fA-F]{24}$`
)

var (
	emailRegex    = regexp.MustCompile(EmailRegexTemplate)
	objectIDRegex = regexp.MustCompile(ObjectIDRegexTemplate)
)

// ValidEmail helper function allows to validate an email address.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidObjectIDHex reports whether s is the hex form of a MongoDB ObjectID.
func ValidObjectIDHex(s string) bool {
	return objectIDRegex.MatchString(s)
}

// BearerToken returns the credential of an "Authorization: Bearer <token>"
// header value, or an empty string if the header does not use that scheme.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}
