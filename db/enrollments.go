package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.vocdoni.io/dvote/log"
)

// IsEnrolled reports whether the user with the given email is enrolled in
// the course.
func (ms *MongoStorage) IsEnrolled(email, courseID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return ms.isEnrolled(ctx, email, courseID)
}

func (ms *MongoStorage) isEnrolled(ctx context.Context, email, courseID string) (bool, error) {
	filter := bson.M{"email": email, "courseId": courseID}
	count, err := ms.enrollments.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountCourseEnrollments returns the number of users enrolled in the course.
func (ms *MongoStorage) CountCourseEnrollments(courseID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return ms.enrollments.CountDocuments(ctx, bson.M{"courseId": courseID})
}

// EnrollmentsByEmail returns the enrollments of the user with the given
// email, oldest first.
func (ms *MongoStorage) EnrollmentsByEmail(email string) ([]Enrollment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "enrolledAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := ms.enrollments.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warnw("error closing cursor", "error", err)
		}
	}()
	enrollments := []Enrollment{}
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// Enroll enrolls the user with the given email in the course. Before
// inserting the enrollment it checks, in this order, that:
//   - the user is not already enrolled in the course (ErrAlreadyEnrolled),
//   - the user has less than MaxEnrollmentsPerUser enrollments (ErrEnrollmentLimit),
//   - the course exists and has seats left (ErrNoSeatsLeft).
//
// The checks run under the storage lock, so they are consistent for the
// requests served by this process. Other processes sharing the database can
// still race past the counters; only the duplicate check is backed by the
// unique (email, courseId) index.
func (ms *MongoStorage) Enroll(email, courseID string) (*Enrollment, error) {
	if email == "" || courseID == "" {
		return nil, ErrInvalidData
	}
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	enrolled, err := ms.isEnrolled(ctx, email, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}
	userEnrollments, err := ms.enrollments.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if userEnrollments >= MaxEnrollmentsPerUser {
		return nil, ErrEnrollmentLimit
	}
	courseEnrollments, err := ms.enrollments.CountDocuments(ctx, bson.M{"courseId": courseID})
	if err != nil {
		return nil, err
	}
	oid, err := objectID(courseID)
	if err != nil {
		return nil, ErrNoSeatsLeft
	}
	course, err := ms.fetchCourseFromDB(ctx, oid)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrNoSeatsLeft
		}
		return nil, err
	}
	if courseEnrollments >= TotalSeats(course) {
		return nil, ErrNoSeatsLeft
	}

	enrollment := &Enrollment{
		Email:      email,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	res, err := ms.enrollments.InsertOne(ctx, enrollment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}
	enrollment.ID = res.InsertedID.(primitive.ObjectID)
	return enrollment, nil
}

// DelEnrollment removes the enrollment of the user in the course. It returns
// ErrNotFound if there is no such enrollment.
func (ms *MongoStorage) DelEnrollment(email, courseID string) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	res, err := ms.enrollments.DeleteOne(ctx, bson.M{"email": email, "courseId": courseID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
