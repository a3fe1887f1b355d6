package db

import (
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnroll(t *testing.T) {
	c := qt.New(t)
	defer func() { c.Assert(testDB.Reset(), qt.IsNil) }()

	courseID := mustAddCourse(t, "Go 101", 10.0)
	before := time.Now().Add(-time.Second)
	enrollment, err := testDB.Enroll(testUserEmail, courseID)
	c.Assert(err, qt.IsNil)
	c.Assert(enrollment.ID.IsZero(), qt.IsFalse)
	c.Assert(enrollment.Email, qt.Equals, testUserEmail)
	c.Assert(enrollment.CourseID, qt.Equals, courseID)
	c.Assert(enrollment.EnrolledAt.After(before), qt.IsTrue)

	enrolled, err := testDB.IsEnrolled(testUserEmail, courseID)
	c.Assert(err, qt.IsNil)
	c.Assert(enrolled, qt.IsTrue)
	enrolled, err = testDB.IsEnrolled(testOtherEmail, courseID)
	c.Assert(err, qt.IsNil)
	c.Assert(enrolled, qt.IsFalse)

	count, err := testDB.CountCourseEnrollments(courseID)
	c.Assert(err, qt.IsNil)
	c.Assert(count, qt.Equals, int64(1))

	_, err = testDB.Enroll("", courseID)
	c.Assert(err, qt.Equals, ErrInvalidData)
}

func TestEnrollAlreadyEnrolled(t *testing.T) {
	c := qt.New(t)
	defer func() { c.Assert(testDB.Reset(), qt.IsNil) }()

	courseID := mustAddCourse(t, "Go 101", 10.0)
	_, err := testDB.Enroll(testUserEmail, courseID)
	c.Assert(err, qt.IsNil)
	_, err = testDB.Enroll(testUserEmail, courseID)
	c.Assert(err, qt.Equals, ErrAlreadyEnrolled)

	count, err := testDB.CountCourseEnrollments(courseID)
	c.Assert(err, qt.IsNil)
	c.Assert(count, qt.Equals, int64(1))
}

func TestEnrollUserLimit(t *testing.T) {
	c := qt.New(t)
	defer func() { c.Assert(testDB.Reset(), qt.IsNil) }()

	for i := 0; i < MaxEnrollmentsPerUser; i++ {
		courseID := mustAddCourse(t, fmt.Sprintf("course %d", i), 10.0)
		_, err := testDB.Enroll(testUserEmail, courseID)
		c.Assert(err, qt.IsNil)
	}
	// the limit applies even if the course has plenty of seats
	courseID := mustAddCourse(t, "one too many", 100.0)
	_, err := testDB.Enroll(testUserEmail, courseID)
	c.Assert(err, qt.Equals, ErrEnrollmentLimit)
	// other users are not affected
	_, err = testDB.Enroll(testOtherEmail, courseID)
	c.Assert(err, qt.IsNil)
}

func TestEnrollNoSeatsLeft(t *testing.T) {
	c := qt.New(t)
	defer func() { c.Assert(testDB.Reset(), qt.IsNil) }()

	courseID := mustAddCourse(t, "tiny", int32(2))
	for i := 0; i < 2; i++ {
		_, err := testDB.Enroll(fmt.Sprintf("user%d@coursion.test", i), courseID)
		c.Assert(err, qt.IsNil)
	}
	_, err := testDB.Enroll(testUserEmail, courseID)
	c.Assert(err, qt.Equals, ErrNoSeatsLeft)

	// unknown and invalid courses have no seats
	_, err = testDB.Enroll(testUserEmail, primitive.NewObjectID().Hex())
	c.Assert(err, qt.Equals, ErrNoSeatsLeft)
	_, err = testDB.Enroll(testUserEmail, "not-an-id")
	c.Assert(err, qt.Equals, ErrNoSeatsLeft)
	// a course without capacity has no seats
	noCapacity, err := testDB.AddCourse(Document{"title": "draft"})
	c.Assert(err, qt.IsNil)
	_, err = testDB.Enroll(testUserEmail, noCapacity.InsertedID.(primitive.ObjectID).Hex())
	c.Assert(err, qt.Equals, ErrNoSeatsLeft)
}

func TestEnrollConcurrent(t *testing.T) {
	c := qt.New(t)
	defer func() { c.Assert(testDB.Reset(), qt.IsNil) }()

	courseID := mustAddCourse(t, "popular", 3.0)
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(i int) {
			_, err := testDB.Enroll(fmt.Sprintf("user%d@coursion.test", i), courseID)
			errs <- err
		}(i)
	}
	succeeded := 0
	for i := 0; i < 10; i++ {
		if err := <-errs; err == nil {
			succeeded++
		} else {
			c.Assert(err, qt.Equals, ErrNoSeatsLeft)
		}
	}
	c.Assert(succeeded, qt.Equals, 3)
	count, err := testDB.CountCourseEnrollments(courseID)
	c.Assert(err, qt.IsNil)
	c.Assert(count, qt.Equals, int64(3))
}

func TestEnrollmentsByEmail(t *testing.T) {
	c := qt.New(t)
	defer func() { c.Assert(testDB.Reset(), qt.IsNil) }()

	enrollments, err := testDB.EnrollmentsByEmail(testUserEmail)
	c.Assert(err, qt.IsNil)
	c.Assert(enrollments, qt.HasLen, 0)

	first := mustAddCourse(t, "first", 10.0)
	second := mustAddCourse(t, "second", 10.0)
	_, err = testDB.Enroll(testUserEmail, first)
	c.Assert(err, qt.IsNil)
	_, err = testDB.Enroll(testUserEmail, second)
	c.Assert(err, qt.IsNil)
	_, err = testDB.Enroll(testOtherEmail, first)
	c.Assert(err, qt.IsNil)

	enrollments, err = testDB.EnrollmentsByEmail(testUserEmail)
	c.Assert(err, qt.IsNil)
	c.Assert(enrollments, qt.HasLen, 2)
	c.Assert(enrollments[0].CourseID, qt.Equals, first)
	c.Assert(enrollments[1].CourseID, qt.Equals, second)
	for _, e := range enrollments {
		c.Assert(e.Email, qt.Equals, testUserEmail)
	}
}

func TestDelEnrollment(t *testing.T) {
	c := qt.New(t)
	defer func() { c.Assert(testDB.Reset(), qt.IsNil) }()

	courseID := mustAddCourse(t, "Go 101", 10.0)
	_, err := testDB.Enroll(testUserEmail, courseID)
	c.Assert(err, qt.IsNil)
	_, err = testDB.Enroll(testOtherEmail, courseID)
	c.Assert(err, qt.IsNil)

	c.Assert(testDB.DelEnrollment(testUserEmail, primitive.NewObjectID().Hex()), qt.Equals, ErrNotFound)
	c.Assert(testDB.DelEnrollment(testUserEmail, courseID), qt.IsNil)
	c.Assert(testDB.DelEnrollment(testUserEmail, courseID), qt.Equals, ErrNotFound)

	// only the matching pair was removed
	count, err := testDB.CountCourseEnrollments(courseID)
	c.Assert(err, qt.IsNil)
	c.Assert(count, qt.Equals, int64(1))
	enrolled, err := testDB.IsEnrolled(testOtherEmail, courseID)
	c.Assert(err, qt.IsNil)
	c.Assert(enrolled, qt.IsTrue)
}
