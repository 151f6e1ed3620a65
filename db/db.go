package db

import (
	"context"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database holds the Mongo client and the collections the handlers work
// with. It is constructed once in main and injected everywhere; there is no
// package-level connection.
type Database struct {
	client *mongo.Client

	Tours    *mongo.Collection
	Bookings *mongo.Collection
	Messages *mongo.Collection
	Users    *mongo.Collection
}

// Connect dials Mongo and binds the named collections.
func Connect(ctx context.Context, cfg config.Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.MongoURI).SetRetryWrites(true)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	d := client.Database(cfg.MongoDB)
	return &Database{
		client:   client,
		Tours:    d.Collection("tours"),
		Bookings: d.Collection("bookings"),
		Messages: d.Collection("messages"),
		Users:    d.Collection("users"),
	}, nil
}

// EnsureIndexes creates the indexes the application depends on. The unique
// slug index is what closes the create/create race: the losing writer gets a
// duplicate-key error instead of a second tour with the same slug.
func (db *Database) EnsureIndexes(ctx context.Context) error {
	_, err := db.Tours.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "featured", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookingid", Value: 1}}},
		{Keys: bson.D{{Key: "tourid", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (db *Database) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
