package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	testProject = "coursion-test"
	testEmail   = "student@coursion.test"
)

// testSigner signs tokens with a local RSA key published through a test JWK
// set server.
type testSigner struct {
	key    jwk.Key
	server *httptest.Server
}

func newTestSigner(c *qt.C) *testSigner {
	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	c.Assert(err, qt.IsNil)
	key, err := jwk.FromRaw(raw)
	c.Assert(err, qt.IsNil)
	c.Assert(key.Set(jwk.KeyIDKey, "test-kid"), qt.IsNil)
	c.Assert(key.Set(jwk.AlgorithmKey, jwa.RS256), qt.IsNil)

	pub, err := jwk.PublicKeyOf(key)
	c.Assert(err, qt.IsNil)
	set := jwk.NewSet()
	c.Assert(set.AddKey(pub), qt.IsNil)
	body, err := json.Marshal(set)
	c.Assert(err, qt.IsNil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	c.Cleanup(server.Close)
	return &testSigner{key: key, server: server}
}

// token builds a valid Firebase-like ID token; mutate can alter it before
// signing.
func (s *testSigner) token(c *qt.C, mutate func(jwt.Token)) string {
	now := time.Now()
	tok, err := jwt.NewBuilder().
		Issuer(firebaseIssuerPrefix+testProject).
		Audience([]string{testProject}).
		Subject("firebase-uid").
		IssuedAt(now.Add(-time.Minute)).
		Expiration(now.Add(time.Hour)).
		Claim("email", testEmail).
		Claim("email_verified", true).
		Claim("name", "Test Student").
		Build()
	c.Assert(err, qt.IsNil)
	if mutate != nil {
		mutate(tok)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.RS256, s.key))
	c.Assert(err, qt.IsNil)
	return string(signed)
}

func (s *testSigner) verifier(c *qt.C) *Firebase {
	ctx, cancel := context.WithCancel(context.Background())
	c.Cleanup(cancel)
	v, err := NewFirebase(ctx, testProject, WithKeysURL(s.server.URL), WithHTTPClient(s.server.Client()))
	c.Assert(err, qt.IsNil)
	return v
}

func TestFirebaseVerify(t *testing.T) {
	c := qt.New(t)
	signer := newTestSigner(c)
	v := signer.verifier(c)
	c.Assert(v.ProjectID(), qt.Equals, testProject)

	claims, err := v.Verify(context.Background(), signer.token(c, nil))
	c.Assert(err, qt.IsNil)
	c.Assert(claims.Email, qt.Equals, testEmail)
	c.Assert(claims.EmailVerified, qt.IsTrue)
	c.Assert(claims.Subject, qt.Equals, "firebase-uid")
	c.Assert(claims.Name, qt.Equals, "Test Student")
	c.Assert(claims.ExpiresAt.After(time.Now()), qt.IsTrue)
}

func TestFirebaseVerifyRejects(t *testing.T) {
	c := qt.New(t)
	signer := newTestSigner(c)
	v := signer.verifier(c)
	other := newTestSigner(c)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "not.a.jwt"},
		{name: "expired", token: signer.token(c, func(t jwt.Token) {
			_ = t.Set(jwt.ExpirationKey, time.Now().Add(-time.Hour))
		})},
		{name: "wrong audience", token: signer.token(c, func(t jwt.Token) {
			_ = t.Set(jwt.AudienceKey, []string{"another-project"})
		})},
		{name: "wrong issuer", token: signer.token(c, func(t jwt.Token) {
			_ = t.Set(jwt.IssuerKey, "https://accounts.google.com")
		})},
		{name: "issued in the future", token: signer.token(c, func(t jwt.Token) {
			_ = t.Set(jwt.IssuedAtKey, time.Now().Add(time.Hour))
		})},
		{name: "no subject", token: signer.token(c, func(t jwt.Token) {
			_ = t.Remove(jwt.SubjectKey)
		})},
		{name: "unknown signing key", token: other.token(c, nil)},
	}
	for _, tc := range tests {
		c.Run(tc.name, func(c *qt.C) {
			_, err := v.Verify(context.Background(), tc.token)
			c.Assert(errors.Is(err, ErrInvalidToken), qt.IsTrue, qt.Commentf("got %v", err))
		})
	}
}

func TestFirebaseVerifyMissingEmail(t *testing.T) {
	c := qt.New(t)
	signer := newTestSigner(c)
	v := signer.verifier(c)
	token := signer.token(c, func(t jwt.Token) { _ = t.Remove("email") })
	_, err := v.Verify(context.Background(), token)
	c.Assert(err, qt.Equals, ErrMissingEmail)
}

func TestNewFirebaseRequiresProject(t *testing.T) {
	c := qt.New(t)
	_, err := NewFirebase(context.Background(), "")
	c.Assert(err, qt.ErrorMatches, "firebase project ID is not defined")
}
