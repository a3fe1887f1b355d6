package db

import (
	"context"
	"testing"
	"time"

	"github.com/coursion/backend/migrations"
	"github.com/coursion/backend/test"
	qt "github.com/frankban/quicktest"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMigrations(t *testing.T) {
	c := qt.New(t)
	ms, err := New(Options{MongoURL: mongoURI, Database: test.RandomDatabaseName()})
	c.Assert(err, qt.IsNil)
	defer ms.Close()
	ctx := context.Background()

	migs := migrations.SortedByVersionAsc()
	last, err := lastAppliedMigration(ctx, ms.migrations)
	c.Assert(err, qt.IsNil)
	c.Assert(last, qt.Equals, migs[len(migs)-1].Version)

	t.Run("Validator", func(*testing.T) {
		// documents that skip the API are still checked by the collection validator
		_, err := ms.enrollments.InsertOne(ctx, bson.M{"email": "not-an-email", "courseId": "x", "enrolledAt": time.Now()})
		c.Assert(err, qt.IsNotNil)
	})

	t.Run("UniquePair", func(*testing.T) {
		doc := bson.M{"email": testUserEmail, "courseId": "65a1f0c2b4d3e5f6a7b8c9d0", "enrolledAt": time.Now()}
		_, err := ms.enrollments.InsertOne(ctx, doc)
		c.Assert(err, qt.IsNil)
		_, err = ms.enrollments.InsertOne(ctx, doc)
		c.Assert(mongo.IsDuplicateKeyError(err), qt.IsTrue)
	})

	t.Run("UpAndDown", func(*testing.T) {
		c.Assert(ms.RunMigrationsDown(1), qt.IsNil)
		last, err := lastAppliedMigration(ctx, ms.migrations)
		c.Assert(err, qt.IsNil)
		c.Assert(last, qt.Equals, migs[len(migs)-2].Version)
		// without the unique index the duplicate pair is accepted
		doc := bson.M{"email": testUserEmail, "courseId": "65a1f0c2b4d3e5f6a7b8c9d0", "enrolledAt": time.Now()}
		_, err = ms.enrollments.InsertOne(ctx, doc)
		c.Assert(err, qt.IsNil)
		res, err := ms.enrollments.DeleteMany(ctx, bson.M{"email": testUserEmail})
		c.Assert(err, qt.IsNil)
		c.Assert(res.DeletedCount, qt.Equals, int64(2))

		c.Assert(ms.RunMigrationsUp(), qt.IsNil)
		last, err = lastAppliedMigration(ctx, ms.migrations)
		c.Assert(err, qt.IsNil)
		c.Assert(last, qt.Equals, migs[len(migs)-1].Version)
	})

	t.Run("Idempotency", func(*testing.T) {
		// every migration can run again on top of an up-to-date database
		_, err := ms.migrations.DeleteMany(ctx, bson.M{})
		c.Assert(err, qt.IsNil)
		c.Assert(ms.RunMigrationsUp(), qt.IsNil)
		count, err := ms.migrations.CountDocuments(ctx, bson.M{})
		c.Assert(err, qt.IsNil)
		c.Assert(count, qt.Equals, int64(len(migs)))
	})
}
