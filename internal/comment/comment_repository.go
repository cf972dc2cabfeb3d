package comment

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/dbmongo"
)

// View is one row of the comment-list view: the comment joined to its
// owner's public profile and its live like count.
type View struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Content   string             `bson:"content" json:"content"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	Owner     dbmongo.UserPublic `bson:"owner" json:"owner"`
	LikeCount int64              `bson:"likeCount" json:"likeCount"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Repository interface {
	ListForVideo(ctx context.Context, video primitive.ObjectID, page, limit int64) (*dbmongo.Page[View], error)
	VideoExists(ctx context.Context, video primitive.ObjectID) (bool, error)
	Create(ctx context.Context, c *dbmongo.Comment) error
	ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Comment, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error
	// DeleteWithLikes removes the comment's like rows first, then the
	// comment itself, so no like row outlives its target.
	DeleteWithLikes(ctx context.Context, id primitive.ObjectID) error
}

type commentRepository struct {
	mc *dbmongo.MongoClient
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &commentRepository{mc: mc}
}

// ListForVideo emits comments in insertion order with owner and like count
// joined in; pagination happens in the shared $facet stage.
func (r *commentRepository) ListForVideo(ctx context.Context, video primitive.ObjectID, page, limit int64) (*dbmongo.Page[View], error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "video", Value: video}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		dbmongo.LookupUserPublic("owner", "owner"),
		dbmongo.FirstOf("owner"),
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollLikes},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "target"},
			{Key: "as", Value: "likes"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "kind", Value: dbmongo.TargetComment}}}},
			}},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "likeCount", Value: bson.D{{Key: "$size", Value: "$likes"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "likes", Value: 0}}}},
	}

	return dbmongo.AggregatePaginate[View](ctx, r.mc.Collection(dbmongo.CollComments), pipeline, page, limit)
}

func (r *commentRepository) VideoExists(ctx context.Context, video primitive.ObjectID) (bool, error) {
	count, err := r.mc.Collection(dbmongo.CollVideos).CountDocuments(ctx, bson.D{{Key: "_id", Value: video}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *commentRepository) Create(ctx context.Context, c *dbmongo.Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.mc.Collection(dbmongo.CollComments).InsertOne(ctx, c)
	return err
}

func (r *commentRepository) ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Comment, error) {
	var c dbmongo.Comment
	err := r.mc.Collection(dbmongo.CollComments).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error {
	_, err := r.mc.Collection(dbmongo.CollComments).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updatedAt", Value: time.Now()},
		}}})
	return err
}

func (r *commentRepository) DeleteWithLikes(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.mc.Collection(dbmongo.CollLikes).DeleteMany(ctx, bson.D{
		{Key: "kind", Value: dbmongo.TargetComment},
		{Key: "target", Value: id},
	})
	if err != nil {
		return err
	}

	_, err = r.mc.Collection(dbmongo.CollComments).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}
