package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.vocdoni.io/dvote/log"
)

const (
	// FirebaseKeysURL publishes the keys that sign Firebase ID tokens as a
	// JWK set. Google rotates them every few hours.
	FirebaseKeysURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
	// firebaseIssuerPrefix followed by the project ID is the expected issuer.
	firebaseIssuerPrefix = "https://securetoken.google.com/"

	keysRefreshInterval = 15 * time.Minute
	acceptableSkew      = time.Minute
)

// Firebase verifies Firebase Authentication ID tokens of a single project.
type Firebase struct {
	projectID string
	keys      jwk.Set
	clock     jwt.Clock
}

// FirebaseOption customizes a Firebase verifier.
type FirebaseOption func(*firebaseConfig)

type firebaseConfig struct {
	keysURL    string
	httpClient *http.Client
	clock      jwt.Clock
}

// WithKeysURL replaces the URL of the JWK set used to verify the tokens.
func WithKeysURL(url string) FirebaseOption {
	return func(c *firebaseConfig) { c.keysURL = url }
}

// WithHTTPClient sets the HTTP client used to fetch the keys.
func WithHTTPClient(client *http.Client) FirebaseOption {
	return func(c *firebaseConfig) { c.httpClient = client }
}

// WithClock sets the clock used to validate the time based claims.
func WithClock(clock jwt.Clock) FirebaseOption {
	return func(c *firebaseConfig) { c.clock = clock }
}

// NewFirebase creates a verifier for the tokens of the given Firebase
// project. The signing keys are fetched in the background and refreshed
// until ctx is canceled.
func NewFirebase(ctx context.Context, projectID string, opts ...FirebaseOption) (*Firebase, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firebase project ID is not defined")
	}
	conf := &firebaseConfig{
		keysURL:    FirebaseKeysURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		clock:      jwt.ClockFunc(time.Now),
	}
	for _, opt := range opts {
		opt(conf)
	}
	cache := jwk.NewCache(ctx)
	if err := cache.Register(conf.keysURL,
		jwk.WithHTTPClient(conf.httpClient),
		jwk.WithMinRefreshInterval(keysRefreshInterval),
	); err != nil {
		return nil, fmt.Errorf("cannot register firebase keys URL: %w", err)
	}
	// the first fetch is only a warm up, a failure here is retried on the
	// first verification
	if _, err := cache.Refresh(ctx, conf.keysURL); err != nil {
		log.Warnw("cannot fetch firebase signing keys", "url", conf.keysURL, "error", err)
	}
	return &Firebase{
		projectID: projectID,
		keys:      jwk.NewCachedSet(cache, conf.keysURL),
		clock:     conf.clock,
	}, nil
}

// ProjectID returns the Firebase project whose tokens are accepted.
func (f *Firebase) ProjectID() string {
	return f.projectID
}

// Verify checks the signature, the issuer, the audience and the validity
// period of a Firebase ID token and returns its claims. Every failure wraps
// ErrInvalidToken, except a valid token without email that returns
// ErrMissingEmail.
func (f *Firebase) Verify(_ context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}
	t, err := jwt.ParseString(token,
		jwt.WithKeySet(f.keys, jws.WithInferAlgorithmFromKey(true)),
		jwt.WithValidate(true),
		jwt.WithClock(f.clock),
		jwt.WithAcceptableSkew(acceptableSkew),
		jwt.WithIssuer(firebaseIssuerPrefix+f.projectID),
		jwt.WithAudience(f.projectID),
		jwt.WithRequiredClaim(jwt.SubjectKey),
		jwt.WithRequiredClaim(jwt.IssuedAtKey),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims := &Claims{
		Subject:   t.Subject(),
		IssuedAt:  t.IssuedAt(),
		ExpiresAt: t.Expiration(),
	}
	claims.Email, _ = privateClaim[string](t, "email")
	claims.EmailVerified, _ = privateClaim[bool](t, "email_verified")
	claims.Name, _ = privateClaim[string](t, "name")
	claims.Picture, _ = privateClaim[string](t, "picture")
	if claims.Email == "" {
		return nil, ErrMissingEmail
	}
	return claims, nil
}

func privateClaim[T any](t jwt.Token, name string) (T, bool) {
	var zero T
	raw, ok := t.Get(name)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}
