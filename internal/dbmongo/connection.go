// Package dbmongo owns the MongoDB connection, the collection handles and
// the shared aggregation helpers used by every repository.
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/config"
)

const (
	CollUsers         = "users"
	CollVideos        = "videos"
	CollComments      = "comments"
	CollTweets        = "tweets"
	CollLikes         = "likes"
	CollSubscriptions = "subscriptions"
	CollPlaylists     = "playlists"
)

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	uri := c.Mongo.URI()
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(c.Mongo.Database)

	mc := &MongoClient{
		Client:   client,
		Database: database,
	}

	if err := mc.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return mc, nil
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}

func (mc *MongoClient) Collection(name string) *mongo.Collection {
	return mc.Database.Collection(name)
}

// EnsureIndexes creates the indexes the application depends on. The unique
// compound keys on likes and subscriptions are what make the toggle protocol
// race-safe: two concurrent inserts for the same (actor, target) pair cannot
// both succeed.
func (mc *MongoClient) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollUsers: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollVideos: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
		},
		CollComments: {
			{Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		CollTweets: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollLikes: {
			{
				Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "target", Value: 1}, {Key: "likedBy", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_like_per_actor_target"),
			},
			{Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: "kind", Value: 1}}},
		},
		CollSubscriptions: {
			{
				Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_subscription"),
			},
			{Keys: bson.D{{Key: "channel", Value: 1}}},
		},
		CollPlaylists: {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := mc.Database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes for %s: %w", coll, err)
		}
	}
	return nil
}
