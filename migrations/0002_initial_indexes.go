package migrations

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	enrollmentPairIndex   = "email_courseId_unique"
	enrollmentCourseIndex = "courseId"
	courseOwnerIndex      = "email"
)

func init() {
	AddMigration(2, "initial_indexes", upInitialIndexes, downInitialIndexes)
}

func upInitialIndexes(ctx context.Context, database *mongo.Database) error {
	enrollments := database.Collection("enrollments")
	if _, err := enrollments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// a user can enroll only once in the same course
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "courseId", Value: 1},
			},
			Options: options.Index().SetName(enrollmentPairIndex).SetUnique(true),
		},
		// seat counting per course
		{
			Keys:    bson.D{{Key: "courseId", Value: 1}},
			Options: options.Index().SetName(enrollmentCourseIndex),
		},
	}); err != nil {
		return fmt.Errorf("failed to create indexes for enrollments: %w", err)
	}
	// courses listed by owner
	if _, err := database.Collection("courses").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName(courseOwnerIndex),
	}); err != nil {
		return fmt.Errorf("failed to create index on email for courses: %w", err)
	}
	return nil
}

func downInitialIndexes(ctx context.Context, database *mongo.Database) error {
	drops := map[string][]string{
		"enrollments": {enrollmentPairIndex, enrollmentCourseIndex},
		"courses":     {courseOwnerIndex},
	}
	for collection, names := range drops {
		for _, name := range names {
			if _, err := database.Collection(collection).Indexes().DropOne(ctx, name); err != nil {
				if strings.Contains(err.Error(), "IndexNotFound") || strings.Contains(err.Error(), "index not found") {
					continue
				}
				return fmt.Errorf("failed to drop index %s on %s: %w", name, collection, err)
			}
		}
	}
	return nil
}
