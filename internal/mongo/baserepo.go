// Package mongo holds the MongoDB-backed repositories. Every repo classifies
// driver errors into the pkg/fail taxonomy at its boundary: duplicate keys
// become Conflict, missing documents become NotFound, everything else Server.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aquamarinepk/aqm"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brigadeclub/brigade/pkg/fail"
)

type BaseRepo struct {
	client *mongo.Client
	db     *mongo.Database
	logger aqm.Logger
	config *aqm.Config
}

func NewBaseRepo(config *aqm.Config, logger aqm.Logger) *BaseRepo {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &BaseRepo{
		logger: logger,
		config: config,
	}
}

func (r *BaseRepo) Start(ctx context.Context) error {
	mongoURL, _ := r.config.GetString("db.mongo.url")
	connString := mongoURL
	if connString == "" {
		connString = "mongodb://localhost:27017"
	}

	dbName, _ := r.config.GetString("db.mongo.name")
	if dbName == "" {
		dbName = "brigade"
	}

	clientOptions := options.Client().ApplyURI(connString).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	r.client = client
	r.db = client.Database(dbName)

	r.logger.Infof("Connected to MongoDB: %s, database: %s", connString, dbName)
	return nil
}

func (r *BaseRepo) Stop(ctx context.Context) error {
	if r.client != nil {
		if err := r.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
		}
		r.logger.Info("Disconnected from MongoDB")
	}
	return nil
}

func (r *BaseRepo) GetDatabase() *mongo.Database {
	return r.db
}

// createErr classifies an InsertOne failure. A duplicate key on _id or on a
// unique index reads as Conflict.
func createErr(what string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fail.Newf(fail.Conflict, "%s already exists", what)
	}
	return fail.FromErr("cannot create "+what, err)
}

// getErr classifies a FindOne failure.
func getErr(what string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fail.Newf(fail.NotFound, "%s not found", what)
	}
	return fail.FromErr("cannot get "+what, err)
}

// saveErr classifies an UpdateOne failure. A duplicate key on a unique index
// reads as Conflict, matching the create path.
func saveErr(what string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fail.Newf(fail.Conflict, "%s already exists", what)
	}
	return fail.FromErr("cannot update "+what, err)
}

func notFoundErr(what string) error {
	return fail.Newf(fail.NotFound, "%s not found", what)
}
