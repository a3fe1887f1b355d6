// Package api provides the HTTP API for the Coursion backend
//
//	@title						Coursion API
//	@version					1.0
//	@description				API for the Coursion course enrollment platform
//
//	@host						localhost:3000
//	@BasePath					/
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the Firebase ID token.
//
//	@tag.name					auth
//	@tag.description			Session operations
//
//	@tag.name					users
//	@tag.description			User profile operations
//
//	@tag.name					courses
//	@tag.description			Course catalog operations
//
//	@tag.name					enrollments
//	@tag.description			Enrollment operations
//
//	@tag.name					content
//	@tag.description			Banners and reviews
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/coursion/backend/api/apicommon"
	"github.com/coursion/backend/db"
	"github.com/coursion/backend/identity"
	"github.com/coursion/backend/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"go.vocdoni.io/dvote/log"
)

// DefaultCORSOrigins are the origins allowed when none are configured: the
// deployed web client and the local development server.
var DefaultCORSOrigins = []string{
	"https://coursion-9faf6.web.app",
	"http://localhost:5173",
}

// Config is the configuration of the API server.
type Config struct {
	Host   string
	Port   int
	Secret string
	DB     db.Database
	// Identity verifies the Firebase ID tokens presented by the clients.
	Identity    identity.Verifier
	CORSOrigins []string
}

// API type represents the API HTTP server with session cookie and identity
// token authentication capabilities.
type API struct {
	db          db.Database
	auth        *jwtauth.JWTAuth
	identity    identity.Verifier
	validator   *validator.Validator
	host        string
	port        int
	corsOrigins []string
	router      *chi.Mux
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	origins := conf.CORSOrigins
	if len(origins) == 0 {
		origins = DefaultCORSOrigins
	}
	return &API{
		db:          conf.DB,
		auth:        jwtauth.New("HS256", []byte(conf.Secret), nil),
		identity:    conf.Identity,
		validator:   validator.New(),
		host:        conf.Host,
		port:        conf.Port,
		corsOrigins: origins,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// Router returns the router of the API, building it if needed.
func (a *API) Router() http.Handler {
	if a.router == nil {
		return a.initRouter()
	}
	return a.router
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	// Create the router with a basic middleware stack
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   a.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	r.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	r.Use(middleware.Timeout(45 * time.Second))

	// protected routes
	r.Group(func(r chi.Router) {
		// verify the identity token or the session cookie
		r.Use(a.identityGuard)
		// enrollments of the authenticated user
		log.Infow("new route", "method", "GET", "path", enrollmentsByUserEndpoint)
		r.Get(enrollmentsByUserEndpoint, a.userEnrollmentsHandler)
	})

	// routes that change their behaviour when the caller is identified
	r.Group(func(r chi.Router) {
		r.Use(a.optionalIdentity)
		// list courses
		log.Infow("new route", "method", "GET", "path", coursesEndpoint)
		r.Get(coursesEndpoint, a.coursesHandler)
		// create a course
		log.Infow("new route", "method", "POST", "path", coursesEndpoint)
		r.Post(coursesEndpoint, a.createCourseHandler)
	})

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte(".")); err != nil {
				log.Warnw("failed to write ping response", "error", err)
			}
		})
		log.Infow("new route", "method", "GET", "path", rootEndpoint)
		r.Get(rootEndpoint, a.rootHandler)
		// issue the session cookie
		log.Infow("new route", "method", "POST", "path", sessionEndpoint)
		r.With(a.validator.InputValidator(apicommon.SessionRequest{})).Post(sessionEndpoint, a.sessionHandler)
		// users
		log.Infow("new route", "method", "GET", "path", usersEndpoint)
		r.Get(usersEndpoint, a.usersHandler)
		log.Infow("new route", "method", "POST", "path", usersEndpoint)
		r.Post(usersEndpoint, a.createUserHandler)
		// banners
		log.Infow("new route", "method", "GET", "path", bannersEndpoint)
		r.Get(bannersEndpoint, a.bannersHandler)
		// single course
		log.Infow("new route", "method", "GET", "path", courseEndpoint)
		r.Get(courseEndpoint, a.courseHandler)
		log.Infow("new route", "method", "PUT", "path", courseEndpoint)
		r.Put(courseEndpoint, a.updateCourseHandler)
		log.Infow("new route", "method", "DELETE", "path", courseEndpoint)
		r.Delete(courseEndpoint, a.deleteCourseHandler)
		// enrollments
		log.Infow("new route", "method", "GET", "path", enrollmentsEndpoint)
		r.Get(enrollmentsEndpoint, a.enrollmentStatusHandler)
		log.Infow("new route", "method", "POST", "path", enrollmentsEndpoint)
		r.With(a.validator.InputValidator(apicommon.EnrollmentRequest{})).Post(enrollmentsEndpoint, a.enrollHandler)
		log.Infow("new route", "method", "GET", "path", enrollmentsCountEndpoint)
		r.Get(enrollmentsCountEndpoint, a.enrollmentCountHandler)
		log.Infow("new route", "method", "DELETE", "path", enrollmentEndpoint)
		r.Delete(enrollmentEndpoint, a.deleteEnrollmentHandler)
		// reviews
		log.Infow("new route", "method", "GET", "path", reviewsEndpoint)
		r.Get(reviewsEndpoint, a.reviewsHandler)
		log.Infow("new route", "method", "POST", "path", reviewsEndpoint)
		r.Post(reviewsEndpoint, a.createReviewHandler)
	})
	a.router = r
	return r
}
