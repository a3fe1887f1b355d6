// Package test provides the containers and fixtures shared by the package
// tests of the backend.
package test

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// MongoImage is the MongoDB image started for the tests.
	MongoImage = "mongo:7"
	// MongoPort is the port exposed by the MongoDB container.
	MongoPort = "27017/tcp"
)

// StartMongoContainer starts a standalone MongoDB container. Use
// container.Endpoint(ctx, "mongodb") to build the connection URL.
func StartMongoContainer(ctx context.Context) (testcontainers.Container, error) {
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        MongoImage,
				ExposedPorts: []string{MongoPort},
				WaitingFor: wait.ForAll(
					wait.ForLog("Waiting for connections"),
					wait.ForListeningPort(nat.Port(MongoPort)),
				),
			},
			Started: true,
		})
}

// RandomDatabaseName returns a database name that does not collide between
// test runs sharing the same server.
func RandomDatabaseName() string {
	return fmt.Sprintf("coursion-test-%d", rand.IntN(1_000_000))
}
