package db

import (
	"context"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Courses returns the stored courses. If email is not empty, only the courses
// created by that email are returned.
func (ms *MongoStorage) Courses(email string) ([]Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	filter := Document{}
	if email != "" {
		filter["email"] = email
	}
	return findDocuments(ctx, ms.courses, filter)
}

// Course returns the course with the given ID. It returns ErrInvalidID if the
// ID is not a valid ObjectID and ErrNotFound if no course matches.
func (ms *MongoStorage) Course(id string) (Document, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return ms.fetchCourseFromDB(ctx, oid)
}

func (ms *MongoStorage) fetchCourseFromDB(ctx context.Context, id any) (Document, error) {
	course := Document{}
	if err := ms.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return course, nil
}

// AddCourse stores a new course document.
func (ms *MongoStorage) AddCourse(course Document) (*InsertResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return insertDocument(ctx, ms.courses, course)
}

// UpdateCourse merges the given fields into the course with the given ID. The
// _id field is never updated. It returns ErrNotFound if no course matches.
func (ms *MongoStorage) UpdateCourse(id string, fields Document) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	update := Document{}
	for k, v := range fields {
		if k != "_id" {
			update[k] = v
		}
	}
	if len(update) == 0 {
		return ErrInvalidData
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	res, err := ms.courses.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DelCourse removes the course with the given ID. It returns ErrNotFound if
// no course matches. Enrollments of the course are kept.
func (ms *MongoStorage) DelCourse(id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	res, err := ms.courses.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalSeats returns the capacity declared by a course document. Courses are
// created by clients, so the value may be stored as any numeric BSON type or
// as a numeric string. A missing or invalid value means no seats.
func TotalSeats(course Document) int64 {
	switch v := course["totalSeats"].(type) {
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return floatSeats(v)
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return floatSeats(n)
	default:
		return 0
	}
}

func floatSeats(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int64(math.Floor(f))
}
