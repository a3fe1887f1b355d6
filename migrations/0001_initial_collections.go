package migrations

import (
	"context"
	"fmt"
	"slices"

	"github.com/coursion/backend/internal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	AddMigration(1, "initial_collections", upInitialCollections, downInitialCollections)
}

var collectionsToCreate = []string{
	"users",
	"banners",
	"courses",
	"enrollments",
	"testimonials",
	"migrations",
}

var collectionsValidators = map[string]bson.M{
	"enrollments": enrollmentsCollectionValidator,
}

var enrollmentsCollectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"email", "courseId", "enrolledAt"},
		"properties": bson.M{
			"email": bson.M{
				"bsonType":    "string",
				"description": "must be an email and is required",
				"pattern":     internal.EmailRegexTemplate,
			},
			"courseId": bson.M{
				"bsonType":    "string",
				"description": "must be the hex ID of a course and is required",
				"pattern":     internal.ObjectIDRegexTemplate,
			},
			"enrolledAt": bson.M{
				"bsonType":    "date",
				"description": "must be a date and is required",
			},
		},
	},
}

func upInitialCollections(ctx context.Context, database *mongo.Database) error {
	current, err := listCollectionsInDB(ctx, database)
	if err != nil {
		return fmt.Errorf("failed to get current collections: %w", err)
	}
	for _, name := range collectionsToCreate {
		if slices.Contains(current, name) {
			continue
		}
		opts := options.CreateCollection()
		if validator, ok := collectionsValidators[name]; ok {
			opts = opts.SetValidator(validator).SetValidationLevel("strict").SetValidationAction("error")
		}
		if err := database.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

// downInitialCollections keeps the data: dropping every collection is too
// destructive for a rollback, and the up func is idempotent anyway.
func downInitialCollections(context.Context, *mongo.Database) error {
	return nil
}
