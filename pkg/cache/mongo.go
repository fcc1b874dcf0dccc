package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a MongoDB cache.
type MongoConfig struct {
	// Collection holds one document per key. Required.
	Collection *mongo.Collection

	// KeyPrefix is prepended to every key built by the cache.
	KeyPrefix string

	// TTL applies when Set is called with a zero TTL.
	TTL time.Duration
}

// Mongo is a cache backed by a MongoDB collection. Documents carry an
// expiresAt date covered by a TTL index, so the server removes expired
// entries; Get also ignores entries that expired before the TTL monitor ran.
type Mongo struct {
	DefaultKeyer

	coll *mongo.Collection
	ttl  time.Duration
}

type mongoDoc struct {
	Key         string    `bson:"_id"`
	ContentType string    `bson:"contentType"`
	Body        []byte    `bson:"body"`
	ExpiresAt   time.Time `bson:"expiresAt"`
}

// NewMongo creates a Mongo cache.
func NewMongo(cfg MongoConfig) (*Mongo, error) {
	if cfg.Collection == nil {
		return nil, fmt.Errorf("mongo collection is required")
	}
	return &Mongo{
		DefaultKeyer: DefaultKeyer{Prefix: cfg.KeyPrefix},
		coll:         cfg.Collection,
		ttl:          cfg.TTL,
	}, nil
}

// EnsureIndexes creates the TTL index on expiresAt. It is idempotent.
func (c *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expiresAt_ttl"),
	})
	return wrapErr(err, "index", c.coll.Name())
}

// Get retrieves a value from the collection.
func (c *Mongo) Get(ctx context.Context, key string) (*Entry, error) {
	var doc mongoDoc
	err := c.coll.FindOne(ctx, bson.M{"_id": key, "expiresAt": bson.M{"$gt": time.Now()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "get", key)
	}
	return &Entry{ContentType: doc.ContentType, Body: doc.Body}, nil
}

// Set upserts the document for key.
func (c *Mongo) Set(ctx context.Context, key string, body []byte, ttl time.Duration, contentType string) error {
	doc := mongoDoc{
		Key:         key,
		ContentType: contentType,
		Body:        body,
		ExpiresAt:   time.Now().Add(ttlOrDefault(ttl, c.ttl)),
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return wrapErr(err, "set", key)
}

// Delete removes the document for key.
func (c *Mongo) Delete(ctx context.Context, key string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": key})
	return wrapErr(err, "delete", key)
}

// Clear removes every document in the collection.
func (c *Mongo) Clear(ctx context.Context) (int, error) {
	res, err := c.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, wrapErr(err, "clear", c.coll.Name())
	}
	return int(res.DeletedCount), nil
}

var (
	_ Cache   = (*Mongo)(nil)
	_ Deleter = (*Mongo)(nil)
	_ Clearer = (*Mongo)(nil)
)
