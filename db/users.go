package db

import "context"

// Users returns every stored user document.
func (ms *MongoStorage) Users() ([]Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return findDocuments(ctx, ms.users, Document{})
}

// AddUser stores a new user document. Users have no server enforced schema.
func (ms *MongoStorage) AddUser(user Document) (*InsertResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return insertDocument(ctx, ms.users, user)
}
