package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists layout documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // default "causeway"
	Collection string // default "layouts"
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "causeway"
	}
	if cfg.Collection == "" {
		cfg.Collection = "layouts"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Put inserts or replaces a layout document by ID.
func (s *MongoStore) Put(ctx context.Context, l *Layout) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": l.ID},
		l,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put layout %s: %w", l.ID, err)
	}
	return nil
}

// Get retrieves a layout by ID, or ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, id string) (*Layout, error) {
	var l Layout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get layout %s: %w", id, err)
	}
	return &l, nil
}

// List returns all layouts, newest first.
func (s *MongoStore) List(ctx context.Context) ([]*Layout, error) {
	cursor, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	var out []*Layout
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode layouts: %w", err)
	}
	return out, nil
}

// Delete removes a layout. Absent IDs are not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete layout %s: %w", id, err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
