// Package migrations keeps the versioned schema changes applied to the MongoDB
// database (collections, validators and indexes).
package migrations

import (
	"context"
	"maps"
	"slices"

	"go.mongodb.org/mongo-driver/mongo"
)

// MigrationFunc applies or reverts a schema change on the given database.
type MigrationFunc func(ctx context.Context, database *mongo.Database) error

// Migration is a single registered schema change.
type Migration struct {
	Version int
	Name    string
	Up      MigrationFunc
	Down    MigrationFunc
}

var registry = make(map[int]Migration)

// AddMigration registers a migration. Migrations register themselves from the
// init function of their own file.
func AddMigration(version int, name string, up, down MigrationFunc) {
	registry[version] = Migration{
		Version: version,
		Name:    name,
		Up:      up,
		Down:    down,
	}
}

// DelMigration removes a migration from the registry.
func DelMigration(version int) { delete(registry, version) }

// SortedByVersionAsc returns all registered migrations, sorted by ascending version
func SortedByVersionAsc() []Migration {
	migs := slices.Collect(maps.Values(registry))
	slices.SortFunc(migs, func(a, b Migration) int { return a.Version - b.Version })
	return migs
}

// AsMap returns a copy of the registry indexed by version.
func AsMap() map[int]Migration {
	return maps.Clone(registry)
}
