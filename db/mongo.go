package db

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.vocdoni.io/dvote/log"
)

// ResetDBEnv is the environment variable that, when set, makes New drop every
// collection before applying the migrations.
const ResetDBEnv = "COURSION_MONGO_RESET_DB"

// MongoStorage uses an external MongoDB service to store users, courses,
// enrollments and the site content.
type MongoStorage struct {
	DBClient *mongo.Client
	database string
	keysLock sync.RWMutex

	users        *mongo.Collection
	banners      *mongo.Collection
	courses      *mongo.Collection
	enrollments  *mongo.Collection
	testimonials *mongo.Collection
	migrations   *mongo.Collection
}

// Options holds the connection settings of the MongoDB storage.
type Options struct {
	MongoURL string
	Database string
	// Username and Password are optional, they override any credentials
	// included in MongoURL.
	Username string
	Password string
}

// New connects to the MongoDB server, initializes the collections and applies
// the pending migrations.
func New(opts Options) (*MongoStorage, error) {
	if opts.MongoURL == "" {
		return nil, fmt.Errorf("mongo URL is not defined")
	}
	if opts.Database == "" {
		return nil, fmt.Errorf("mongo database is not defined")
	}
	log.Infow("connecting to mongodb", "database", opts.Database)
	// preparing connection
	clientOpts := options.Client().ApplyURI(opts.MongoURL).SetMaxConnecting(200)
	if opts.Username != "" {
		clientOpts.SetAuth(options.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
	}
	timeout := 10 * time.Second
	clientOpts.SetConnectTimeout(timeout)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// check if the connection is successful
	ctx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	ms := &MongoStorage{
		DBClient: client,
		database: opts.Database,
	}
	ms.initCollections()
	if reset := os.Getenv(ResetDBEnv); reset != "" {
		if err := ms.Reset(); err != nil {
			return nil, err
		}
		return ms, nil
	}
	if err := ms.RunMigrationsUp(); err != nil {
		return nil, fmt.Errorf("cannot run migrations: %w", err)
	}
	return ms, nil
}

// Close disconnects the underlying MongoDB client.
func (ms *MongoStorage) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ms.DBClient.Disconnect(ctx); err != nil {
		log.Warn(err)
	}
}

// Reset drops every collection and applies all the migrations again.
func (ms *MongoStorage) Reset() error {
	log.Infof("resetting database")
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, c := range ms.collections() {
		if err := c.Drop(ctx); err != nil {
			return fmt.Errorf("cannot drop collection %s: %w", c.Name(), err)
		}
	}
	return ms.RunMigrationsUp()
}
