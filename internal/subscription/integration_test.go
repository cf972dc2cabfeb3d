package subscription

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/config"
	"vidtube/internal/dbmongo"
)

func integrationClient(t *testing.T) *dbmongo.MongoClient {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cfg := &config.Config{
		Mongo: config.MongoConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USER", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DB", "vidtube_test"),
		},
	}
	client, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}
	t.Cleanup(func() { client.Close(context.Background()) })
	return client
}

func TestSubscriptionRepository_Toggle_Integration(t *testing.T) {
	ctx := context.Background()
	client := integrationClient(t)
	repo := NewRepository(client)

	channel := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	subs := client.Collection(dbmongo.CollSubscriptions)
	t.Cleanup(func() {
		subs.DeleteMany(ctx, bson.D{{Key: "channel", Value: channel}})
	})

	subscriberCount := func() int64 {
		count, err := subs.CountDocuments(ctx, bson.D{{Key: "channel", Value: channel}})
		require.NoError(t, err)
		return count
	}

	// each subscribe adds exactly one row to the channel's count
	subscribed, err := repo.Toggle(ctx, alice, channel)
	require.NoError(t, err)
	assert.True(t, subscribed)
	assert.Equal(t, int64(1), subscriberCount())

	subscribed, err = repo.Toggle(ctx, bob, channel)
	require.NoError(t, err)
	assert.True(t, subscribed)
	assert.Equal(t, int64(2), subscriberCount())

	// the subscriber view reflects the same rows the count does
	views, err := repo.Subscribers(ctx, channel)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	// unsubscribe removes only that subscriber's row
	subscribed, err = repo.Toggle(ctx, alice, channel)
	require.NoError(t, err)
	assert.False(t, subscribed)
	assert.Equal(t, int64(1), subscriberCount())

	subscribed, err = repo.Toggle(ctx, bob, channel)
	require.NoError(t, err)
	assert.False(t, subscribed)
	assert.Equal(t, int64(0), subscriberCount())
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
