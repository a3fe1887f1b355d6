package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/coursion/backend/db"
	"github.com/coursion/backend/identity"
	"github.com/coursion/backend/test"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	testSecret     = "super-secret"
	testEmail      = "user@test.com"
	testOtherEmail = "other@test.com"
	testHost       = "0.0.0.0"
	testPort       = 7788

	// identity tokens accepted by the test verifier
	testToken      = "user-token"
	testOtherToken = "other-token"
	testNoEmail    = "no-email-token"
)

// testDB is the MongoDB storage for the tests. Make it global so it can be
// accessed by the tests directly.
var testDB *db.MongoStorage

// testVerifier is an identity.Verifier that accepts a fixed set of tokens.
type testVerifier map[string]string

func (tv testVerifier) Verify(_ context.Context, token string) (*identity.Claims, error) {
	email, ok := tv[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	if email == "" {
		return nil, identity.ErrMissingEmail
	}
	now := time.Now()
	return &identity.Claims{
		Subject:       "uid-" + email,
		Email:         email,
		EmailVerified: true,
		IssuedAt:      now,
		ExpiresAt:     now.Add(time.Hour),
	}, nil
}

// testURL helper function returns the full URL for the given path using the
// test host and port.
func testURL(path string) string {
	return fmt.Sprintf("http://%s:%d%s", testHost, testPort, path)
}

// mustMarshal helper function marshalls the input interface into a byte slice.
// It panics if the marshalling fails.
func mustMarshal(i any) []byte {
	b, err := json.Marshal(i)
	if err != nil {
		panic(err)
	}
	return b
}

// testRequest sends a request to the test API and returns the response
// body, the status code and the cookies set. The credential is sent as a
// Bearer token if it is not empty. The body is marshalled to JSON unless it
// is a string, which is sent as is.
func testRequest(t *testing.T, method, credential string, body any, path string, cookies ...*http.Cookie) ([]byte, int, []*http.Cookie) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		reader = bytes.NewReader(mustMarshal(b))
	}
	req, err := http.NewRequest(method, testURL(path), reader)
	if err != nil {
		t.Fatalf("cannot create request: %v", err)
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("cannot send request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("cannot read response: %v", err)
	}
	return data, resp.StatusCode, resp.Cookies()
}

// resetDB drops every document stored by the test.
func resetDB(t *testing.T) {
	if err := testDB.Reset(); err != nil {
		t.Logf("error resetting test database: %v", err)
	}
}

// mustAddCourse stores a course with the given capacity and returns its hex ID.
func mustAddCourse(t *testing.T, owner string, seats any) string {
	t.Helper()
	res, err := testDB.AddCourse(db.Document{"title": "course", "email": owner, "totalSeats": seats})
	if err != nil {
		t.Fatalf("cannot add course: %v", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex()
}

// pingAPI helper function pings the API endpoint and retries the request
// if it fails until the retries limit is reached. It returns an error if the
// request fails or the status code is not 200 as many times as the retries
// limit.
func pingAPI(endpoint string, retries int) error {
	// create a new ping request
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	// try to ping the API
	var pingErr error
	for i := 0; i < retries; i++ {
		var resp *http.Response
		if resp, pingErr = http.DefaultClient.Do(req); pingErr == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			pingErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		time.Sleep(time.Second)
	}
	return pingErr
}

// TestMain function starts the MongoDB container and the API server before
// running the tests. The API uses a verifier that accepts the test tokens
// instead of verifying real Firebase ID tokens.
func TestMain(m *testing.M) {
	ctx := context.Background()
	// start a MongoDB container for testing
	dbContainer, err := test.StartMongoContainer(ctx)
	if err != nil {
		panic(err)
	}
	// get the MongoDB connection string
	mongoURI, err := dbContainer.Endpoint(ctx, "mongodb")
	if err != nil {
		panic(err)
	}
	// set reset db env var to true
	_ = os.Setenv(db.ResetDBEnv, "true")
	// create a new MongoDB connection with the test database
	if testDB, err = db.New(db.Options{MongoURL: mongoURI, Database: test.RandomDatabaseName()}); err != nil {
		panic(err)
	}
	// start the API
	New(&Config{
		Host:   testHost,
		Port:   testPort,
		Secret: testSecret,
		DB:     testDB,
		Identity: testVerifier{
			testToken:      testEmail,
			testOtherToken: testOtherEmail,
			testNoEmail:    "",
		},
	}).Start()
	// wait for the API to start
	if err := pingAPI(testURL(pingEndpoint), 5); err != nil {
		panic(err)
	}
	// run the tests
	code := m.Run()
	testDB.Close()
	_ = dbContainer.Terminate(ctx)
	os.Exit(code)
}
