package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a schemaless document, as submitted by the clients and as
// stored in MongoDB. Users, banners, courses and testimonials are documents.
type Document = bson.M

// InsertResult mirrors the result of inserting a single document.
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

// Enrollment relates a user (by email) with a course (by the hex form of its
// ID).
type Enrollment struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email      string             `json:"email" bson:"email"`
	CourseID   string             `json:"courseId" bson:"courseId"`
	EnrolledAt time.Time          `json:"enrolledAt" bson:"enrolledAt"`
}
