package dashboard

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/dbmongo"
)

// Stats are the owner-facing channel aggregates. Counts are computed live
// from the underlying rows, never from stored counters.
type Stats struct {
	TotalVideos      int64 `bson:"totalVideos" json:"totalVideos"`
	TotalViews       int64 `bson:"totalViews" json:"totalViews"`
	TotalLikes       int64 `bson:"totalLikes" json:"totalLikes"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

// ChannelVideoView is one row of the owner's channel listing: every video of
// the channel, published or not, with its like count.
type ChannelVideoView struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	LikeCount   int64              `bson:"likeCount" json:"likeCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type Repository interface {
	Stats(ctx context.Context, owner primitive.ObjectID) (*Stats, error)
	ChannelVideos(ctx context.Context, owner primitive.ObjectID, page, limit int64) (*dbmongo.Page[ChannelVideoView], error)
}

type dashboardRepository struct {
	mc *dbmongo.MongoClient
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &dashboardRepository{mc: mc}
}

// Stats groups the owner's videos into totals and sums the per-video like
// counts in the same pipeline; the subscriber count is a separate query on
// the subscriptions collection.
func (r *dashboardRepository) Stats(ctx context.Context, owner primitive.ObjectID) (*Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollLikes},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "target"},
			{Key: "as", Value: "likes"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "kind", Value: dbmongo.TargetVideo}}}},
			}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalVideos", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$views"}}},
			{Key: "totalLikes", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: "$likes"}}}}},
		}}},
	}

	cursor, err := r.mc.Collection(dbmongo.CollVideos).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []Stats
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &Stats{}
	if len(rows) > 0 {
		*stats = rows[0]
	}

	subscribers, err := r.mc.Collection(dbmongo.CollSubscriptions).CountDocuments(ctx,
		bson.D{{Key: "channel", Value: owner}})
	if err != nil {
		return nil, err
	}
	stats.TotalSubscribers = subscribers
	return stats, nil
}

func (r *dashboardRepository) ChannelVideos(ctx context.Context, owner primitive.ObjectID, page, limit int64) (*dbmongo.Page[ChannelVideoView], error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollLikes},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "target"},
			{Key: "as", Value: "likes"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "kind", Value: dbmongo.TargetVideo}}}},
			}},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "likeCount", Value: bson.D{{Key: "$size", Value: "$likes"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "likes", Value: 0}}}},
	}

	return dbmongo.AggregatePaginate[ChannelVideoView](ctx, r.mc.Collection(dbmongo.CollVideos), pipeline, page, limit)
}
