package like

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/dbmongo"
)

// LikedVideoView is one row of the liked-videos view: the like row joined to
// its video and the video's owner. Likes whose video was deleted are
// filtered out by the pipeline before decoding.
type LikedVideoView struct {
	ID      primitive.ObjectID     `bson:"_id" json:"id"`
	Video   dbmongo.VideoWithOwner `bson:"video" json:"video"`
	LikedAt time.Time              `bson:"createdAt" json:"likedAt"`
}

type Repository interface {
	// Toggle atomically flips membership of the (actor, kind, target) key and
	// reports the resulting state: true = present (liked), false = absent.
	Toggle(ctx context.Context, kind dbmongo.TargetKind, target, actor primitive.ObjectID) (bool, error)
	TargetExists(ctx context.Context, kind dbmongo.TargetKind, target primitive.ObjectID) (bool, error)
	LikedVideos(ctx context.Context, actor primitive.ObjectID) ([]LikedVideoView, error)
}

type likeRepository struct {
	mc *dbmongo.MongoClient
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &likeRepository{mc: mc}
}

// Toggle deletes the like row first; a successful delete means the toggle
// transitioned to absent. Otherwise it inserts, and a duplicate-key error
// means a concurrent identical request already inserted the row - both
// requests wanted presence, so that is reported as liked. The unique
// (kind, target, likedBy) index is what makes this race-safe.
func (r *likeRepository) Toggle(ctx context.Context, kind dbmongo.TargetKind, target, actor primitive.ObjectID) (bool, error) {
	coll := r.mc.Collection(dbmongo.CollLikes)

	filter := bson.D{
		{Key: "kind", Value: kind},
		{Key: "target", Value: target},
		{Key: "likedBy", Value: actor},
	}

	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	_, err = coll.InsertOne(ctx, dbmongo.Like{
		ID:        primitive.NewObjectID(),
		Kind:      kind,
		Target:    target,
		LikedBy:   actor,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *likeRepository) TargetExists(ctx context.Context, kind dbmongo.TargetKind, target primitive.ObjectID) (bool, error) {
	var coll string
	switch kind {
	case dbmongo.TargetVideo:
		coll = dbmongo.CollVideos
	case dbmongo.TargetComment:
		coll = dbmongo.CollComments
	case dbmongo.TargetTweet:
		coll = dbmongo.CollTweets
	default:
		return false, nil
	}

	count, err := r.mc.Collection(coll).CountDocuments(ctx, bson.D{{Key: "_id", Value: target}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) LikedVideos(ctx context.Context, actor primitive.ObjectID) ([]LikedVideoView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "kind", Value: dbmongo.TargetVideo},
			{Key: "likedBy", Value: actor},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollVideos},
			{Key: "localField", Value: "target"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video"},
			{Key: "pipeline", Value: bson.A{
				dbmongo.LookupUserPublic("owner", "owner"),
				dbmongo.FirstOf("owner"),
			}},
		}}},
		dbmongo.FirstOf("video"),
		// tolerate dangling likes: drop rows whose video was deleted
		{{Key: "$match", Value: bson.D{{Key: "video", Value: bson.D{{Key: "$ne", Value: nil}}}}}},
	}

	cursor, err := r.mc.Collection(dbmongo.CollLikes).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var views []LikedVideoView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}
