package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coursion/backend/api"
	"github.com/coursion/backend/db"
	"github.com/coursion/backend/identity"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"
)

func main() {
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 3000, "listen port")
	flag.StringP("secret", "s", "", "secret used to sign the session tokens")
	flag.String("mongo-url", "", "The URL of the MongoDB server")
	flag.String("mongo-db", "coursion", "The name of the MongoDB database")
	flag.String("mongo-user", "", "The username of the MongoDB server")
	flag.String("mongo-pass", "", "The password of the MongoDB server")
	flag.String("firebase-service-key", "", "base64 encoded Firebase service account key")
	flag.String("firebase-project", "", "Firebase project ID (overrides the one of the service account key)")
	flag.StringSlice("cors-origins", api.DefaultCORSOrigins, "origins allowed to send credentialed requests")
	flag.String("log-level", "info", "log level (debug, info, warn, error)")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("COURSION")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	// read the configuration
	log.Init(viper.GetString("log-level"), "stdout", nil)
	host := viper.GetString("host")
	port := viper.GetInt("port")
	secret := viper.GetString("secret")
	if secret == "" {
		log.Fatal("secret is required")
	}
	mongoURL := viper.GetString("mongo-url")
	if mongoURL == "" {
		log.Fatal("mongo-url is required")
	}
	// resolve the Firebase project
	projectID := viper.GetString("firebase-project")
	if projectID == "" {
		serviceKey := viper.GetString("firebase-service-key")
		if serviceKey == "" {
			log.Fatal("firebase-service-key or firebase-project is required")
		}
		var err error
		if projectID, err = identity.ProjectIDFromServiceAccount(serviceKey); err != nil {
			log.Fatalf("could not read the Firebase service account key: %v", err)
		}
	}
	// initialize the MongoDB database
	database, err := db.New(db.Options{
		MongoURL: mongoURL,
		Database: viper.GetString("mongo-db"),
		Username: viper.GetString("mongo-user"),
		Password: viper.GetString("mongo-pass"),
	})
	if err != nil {
		log.Fatalf("could not create the MongoDB database: %v", err)
	}
	defer database.Close()
	// initialize the identity verifier, it keeps the Firebase signing keys
	// refreshed in the background until the context is cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	verifier, err := identity.NewFirebase(ctx, projectID)
	if err != nil {
		log.Fatalf("could not create the Firebase verifier: %v", err)
	}
	log.Infow("identity verifier ready", "project", projectID)
	// create the local API server
	api.New(&api.Config{
		Host:        host,
		Port:        port,
		Secret:      secret,
		DB:          database,
		Identity:    verifier,
		CORSOrigins: viper.GetStringSlice("cors-origins"),
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Infow("shutting down")
}
