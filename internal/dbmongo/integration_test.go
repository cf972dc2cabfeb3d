package dbmongo

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/config"
)

// Integration tests run against a real MongoDB, typically the docker-compose
// instance, and skip when none is reachable.

func integrationConfig() *config.Config {
	return &config.Config{
		Mongo: config.MongoConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USER", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DB", "vidtube_test"),
		},
	}
}

func integrationClient(t *testing.T) *MongoClient {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client, err := NewMongoConnection(integrationConfig())
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}
	t.Cleanup(func() { client.Close(context.Background()) })
	return client
}

func TestMongoConnection_Integration(t *testing.T) {
	ctx := context.Background()
	client := integrationClient(t)

	err := client.Client.Ping(ctx, nil)
	assert.NoError(t, err)
	assert.NotNil(t, client.Database)
}

func TestEnsureIndexes_UniqueLikeKey_Integration(t *testing.T) {
	ctx := context.Background()
	client := integrationClient(t)

	likes := client.Collection(CollLikes)
	target := primitive.NewObjectID()
	actor := primitive.NewObjectID()
	row := bson.D{
		{Key: "kind", Value: TargetVideo},
		{Key: "target", Value: target},
		{Key: "likedBy", Value: actor},
	}
	t.Cleanup(func() { likes.DeleteMany(ctx, row) })

	_, err := likes.InsertOne(ctx, row)
	require.NoError(t, err)

	// the compound unique key must reject the identical second row
	_, err = likes.InsertOne(ctx, row)
	require.Error(t, err)
	assert.True(t, mongo.IsDuplicateKeyError(err))
}

func TestAggregatePaginate_Integration(t *testing.T) {
	ctx := context.Background()
	client := integrationClient(t)

	coll := client.Collection("paginate_scratch")
	t.Cleanup(func() { coll.Drop(ctx) })

	docs := make([]interface{}, 0, 12)
	for n := 1; n <= 12; n++ {
		docs = append(docs, bson.D{{Key: "n", Value: n}})
	}
	_, err := coll.InsertMany(ctx, docs)
	require.NoError(t, err)

	type item struct {
		N int `bson:"n"`
	}
	sorted := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "n", Value: 1}}}},
	}

	t.Run("middle page", func(t *testing.T) {
		page, err := AggregatePaginate[item](ctx, coll, sorted, 2, 5)
		require.NoError(t, err)

		assert.Equal(t, int64(12), page.TotalCount)
		assert.Equal(t, int64(3), page.TotalPages)
		require.Len(t, page.Items, 5)
		for i, it := range page.Items {
			assert.Equal(t, 6+i, it.N)
		}
	})

	t.Run("past the end", func(t *testing.T) {
		page, err := AggregatePaginate[item](ctx, coll, sorted, 4, 5)
		require.NoError(t, err)

		assert.Empty(t, page.Items)
		assert.Equal(t, int64(12), page.TotalCount)
	})

	t.Run("invalid params clamp to defaults", func(t *testing.T) {
		page, err := AggregatePaginate[item](ctx, coll, sorted, 0, -1)
		require.NoError(t, err)

		assert.Equal(t, int64(1), page.Page)
		assert.Equal(t, int64(10), page.Limit)
		require.Len(t, page.Items, 10)
		assert.Equal(t, 1, page.Items[0].N)
	})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
