package tweet

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/dbmongo"
)

// View is one row of the tweet-list view: the tweet with its owner's public
// profile and the public profiles of everyone who liked it. Likers are a
// sequence, not a count.
type View struct {
	ID        primitive.ObjectID   `bson:"_id" json:"id"`
	Content   string               `bson:"content" json:"content"`
	Owner     dbmongo.UserPublic   `bson:"owner" json:"owner"`
	LikedBy   []dbmongo.UserPublic `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, t *dbmongo.Tweet) error
	ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Tweet, error)
	ListForOwner(ctx context.Context, owner primitive.ObjectID) ([]View, error)
	UserExists(ctx context.Context, user primitive.ObjectID) (bool, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error
	DeleteWithLikes(ctx context.Context, id primitive.ObjectID) error
}

type tweetRepository struct {
	mc *dbmongo.MongoClient
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &tweetRepository{mc: mc}
}

func (r *tweetRepository) Create(ctx context.Context, t *dbmongo.Tweet) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.mc.Collection(dbmongo.CollTweets).InsertOne(ctx, t)
	return err
}

func (r *tweetRepository) ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Tweet, error) {
	var t dbmongo.Tweet
	err := r.mc.Collection(dbmongo.CollTweets).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListForOwner joins each tweet's like rows and resolves every liker to a
// public profile. The nested lookup keeps the likers as a flat profile
// array on the row.
func (r *tweetRepository) ListForOwner(ctx context.Context, owner primitive.ObjectID) ([]View, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		dbmongo.LookupUserPublic("owner", "owner"),
		dbmongo.FirstOf("owner"),
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollLikes},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "target"},
			{Key: "as", Value: "likedBy"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "kind", Value: dbmongo.TargetTweet}}}},
				dbmongo.LookupUserPublic("likedBy", "liker"),
				dbmongo.FirstOf("liker"),
				bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$liker"}}}},
			}},
		}}},
	}

	cursor, err := r.mc.Collection(dbmongo.CollTweets).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var views []View
	if err := cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *tweetRepository) UserExists(ctx context.Context, user primitive.ObjectID) (bool, error) {
	count, err := r.mc.Collection(dbmongo.CollUsers).CountDocuments(ctx, bson.D{{Key: "_id", Value: user}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error {
	_, err := r.mc.Collection(dbmongo.CollTweets).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updatedAt", Value: time.Now()},
		}}})
	return err
}

func (r *tweetRepository) DeleteWithLikes(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.mc.Collection(dbmongo.CollLikes).DeleteMany(ctx, bson.D{
		{Key: "kind", Value: dbmongo.TargetTweet},
		{Key: "target", Value: id},
	})
	if err != nil {
		return err
	}

	_, err = r.mc.Collection(dbmongo.CollTweets).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}
