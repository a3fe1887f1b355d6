package api

const (
	// GET / to check the service is up
	rootEndpoint = "/"
	// GET /ping to check the API is ready
	pingEndpoint = "/ping"

	// session routes

	// POST /jwt to exchange a Firebase ID token for a session cookie
	sessionEndpoint = "/jwt"

	// user routes

	// GET /users to list the users, POST /users to store a new one
	usersEndpoint = "/users"

	// content routes

	// GET /banners to list the banners
	bannersEndpoint = "/banners"
	// GET /reviews to list the testimonials, POST /reviews to add one
	reviewsEndpoint = "/reviews"

	// course routes

	// GET /courses to list the courses, POST /courses to create one
	coursesEndpoint = "/courses"
	// GET, PUT, DELETE /courses/{id} to manage a single course
	courseEndpoint = "/courses/{id}"

	// enrollment routes

	// GET /enrollments?email=&courseId= to check an enrollment, POST
	// /enrollments to enroll
	enrollmentsEndpoint = "/enrollments"
	// GET /enrollments/count/{courseId} to count the enrollments of a course
	enrollmentsCountEndpoint = "/enrollments/count/{courseId}"
	// GET /enrollments/byUser/{email} to list the enrollments of a user
	enrollmentsByUserEndpoint = "/enrollments/byUser/{email}"
	// DELETE /enrollments/{email}/{courseId} to remove an enrollment
	enrollmentEndpoint = "/enrollments/{email}/{courseId}"
)
