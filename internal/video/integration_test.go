package video

import (
	"context"
	"os"
	"testing"
	"time"

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

func TestVideoRepository_DeleteWithDependents_Integration(t *testing.T) {
	ctx := context.Background()
	client := integrationClient(t)
	repo := NewRepository(client)

	owner := primitive.NewObjectID()
	videos := client.Collection(dbmongo.CollVideos)
	comments := client.Collection(dbmongo.CollComments)
	likes := client.Collection(dbmongo.CollLikes)

	video := &dbmongo.Video{Owner: owner, Title: "doomed", IsPublished: true}
	require.NoError(t, repo.Create(ctx, video))

	otherVideo := &dbmongo.Video{Owner: owner, Title: "survivor", IsPublished: true}
	require.NoError(t, repo.Create(ctx, otherVideo))

	now := time.Now()
	c1 := dbmongo.Comment{ID: primitive.NewObjectID(), Content: "first", Video: video.ID, Owner: owner, CreatedAt: now}
	c2 := dbmongo.Comment{ID: primitive.NewObjectID(), Content: "second", Video: video.ID, Owner: owner, CreatedAt: now}
	_, err := comments.InsertMany(ctx, []interface{}{c1, c2})
	require.NoError(t, err)

	likeRows := []interface{}{
		dbmongo.Like{ID: primitive.NewObjectID(), Kind: dbmongo.TargetVideo, Target: video.ID, LikedBy: owner, CreatedAt: now},
		dbmongo.Like{ID: primitive.NewObjectID(), Kind: dbmongo.TargetComment, Target: c1.ID, LikedBy: owner, CreatedAt: now},
		dbmongo.Like{ID: primitive.NewObjectID(), Kind: dbmongo.TargetComment, Target: c2.ID, LikedBy: owner, CreatedAt: now},
		dbmongo.Like{ID: primitive.NewObjectID(), Kind: dbmongo.TargetVideo, Target: otherVideo.ID, LikedBy: owner, CreatedAt: now},
	}
	_, err = likes.InsertMany(ctx, likeRows)
	require.NoError(t, err)

	t.Cleanup(func() {
		videos.DeleteMany(ctx, bson.D{{Key: "owner", Value: owner}})
		comments.DeleteMany(ctx, bson.D{{Key: "owner", Value: owner}})
		likes.DeleteMany(ctx, bson.D{{Key: "likedBy", Value: owner}})
	})

	require.NoError(t, repo.DeleteWithDependents(ctx, video.ID))

	// the video, its comments, and every like row hanging off them are gone
	gone, err := repo.ByID(ctx, video.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	count, err := comments.CountDocuments(ctx, bson.D{{Key: "video", Value: video.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = likes.CountDocuments(ctx, bson.D{
		{Key: "target", Value: bson.D{{Key: "$in", Value: []primitive.ObjectID{video.ID, c1.ID, c2.ID}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// rows belonging to other videos are untouched
	count, err = likes.CountDocuments(ctx, bson.D{{Key: "target", Value: otherVideo.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	survivor, err := repo.ByID(ctx, otherVideo.ID)
	require.NoError(t, err)
	require.NotNil(t, survivor)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
