package db

// Database is the storage used by the API handlers.
type Database interface {
	Close()
	Reset() error
	// users
	Users() ([]Document, error)
	AddUser(Document) (*InsertResult, error)
	// content
	Banners() ([]Document, error)
	Testimonials() ([]Document, error)
	AddTestimonial(Document) (*InsertResult, error)
	// courses
	Courses(email string) ([]Document, error)
	Course(id string) (Document, error)
	AddCourse(Document) (*InsertResult, error)
	UpdateCourse(id string, fields Document) error
	DelCourse(id string) error
	// enrollments
	IsEnrolled(email, courseID string) (bool, error)
	CountCourseEnrollments(courseID string) (int64, error)
	EnrollmentsByEmail(email string) ([]Enrollment, error)
	Enroll(email, courseID string) (*Enrollment, error)
	DelEnrollment(email, courseID string) error
}

var _ Database = (*MongoStorage)(nil)
