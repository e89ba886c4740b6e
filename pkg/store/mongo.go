package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strandlab/rnaplot/pkg/errors"
)

// MongoConfig configures the Mongo store backend.
type MongoConfig struct {
	// URI is the connection string (mongodb://host:port).
	URI string
	// Database defaults to "rnaplot".
	Database string
	// Collection defaults to "drawings".
	Collection string
}

// MongoStore persists drawings in a MongoDB collection so multiple
// server instances share one drawing namespace.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection with a ping
// and ensures the created_at index used by List.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "rnaplot"
	}
	if cfg.Collection == "" {
		cfg.Collection = "drawings"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Put stores a drawing, replacing any existing document with the same ID.
func (s *MongoStore) Put(ctx context.Context, d *Drawing) error {
	prepare(d)

	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": d.ID}, d, opts)
	return err
}

// Get fetches a drawing by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Drawing, error) {
	var d Drawing
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "fetch drawing %s", id)
	}
	return &d, nil
}

// List returns the most recent drawings, newest first, without artifacts.
func (s *MongoStore) List(ctx context.Context, limit int) ([]*Drawing, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"artifact": 0})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var drawings []*Drawing
	if err := cur.All(ctx, &drawings); err != nil {
		return nil, err
	}
	return drawings, nil
}

// Delete removes a drawing by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
