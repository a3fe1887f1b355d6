package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.vocdoni.io/dvote/log"
)

// initCollections binds the collection handles of the storage. The
// collections themselves, with their validators and indexes, are created by
// the migrations.
func (ms *MongoStorage) initCollections() {
	database := ms.DBClient.Database(ms.database)
	ms.users = database.Collection("users")
	ms.banners = database.Collection("banners")
	ms.courses = database.Collection("courses")
	ms.enrollments = database.Collection("enrollments")
	ms.testimonials = database.Collection("testimonials")
	ms.migrations = database.Collection("migrations")
}

func (ms *MongoStorage) collections() []*mongo.Collection {
	return []*mongo.Collection{
		ms.users, ms.banners, ms.courses, ms.enrollments, ms.testimonials, ms.migrations,
	}
}

// findDocuments returns every document of the collection that matches the
// filter, without any transformation.
func findDocuments(ctx context.Context, collection *mongo.Collection, filter bson.M) ([]Document, error) {
	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warnw("error closing cursor", "collection", collection.Name(), "error", err)
		}
	}()
	docs := []Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// insertDocument stores a client supplied document. Any _id provided by the
// client is discarded so MongoDB assigns a new one.
func insertDocument(ctx context.Context, collection *mongo.Collection, doc Document) (*InsertResult, error) {
	if doc == nil {
		return nil, ErrInvalidData
	}
	delete(doc, "_id")
	res, err := collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

// objectID parses the hex form of a MongoDB ObjectID.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
