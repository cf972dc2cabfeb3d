package video

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/dbmongo"
)

// DetailView is the single-video page: the video joined to its owner's public
// profile, its live like count, and whether the caller has liked it.
type DetailView struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Owner       dbmongo.UserPublic `bson:"owner" json:"owner"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	LikeCount   int64              `bson:"likeCount" json:"likeCount"`
	IsLiked     bool               `bson:"isLiked" json:"isLiked"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// SearchParams filter and order the public listing. Owner may be the zero
// ObjectID to skip the owner filter; SortBy must already be whitelisted by
// the service.
type SearchParams struct {
	Query   string
	Owner   primitive.ObjectID
	SortBy  string
	SortAsc bool
	Page    int64
	Limit   int64
}

type UpdatePatch struct {
	Title       string
	Description string
	Thumbnail   string
}

type Repository interface {
	Create(ctx context.Context, v *dbmongo.Video) error
	ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Video, error)
	Update(ctx context.Context, id primitive.ObjectID, patch UpdatePatch) error
	SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error
	Search(ctx context.Context, params SearchParams) (*dbmongo.Page[dbmongo.VideoWithOwner], error)
	ViewByID(ctx context.Context, id, caller primitive.ObjectID) (*DetailView, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	AddToWatchHistory(ctx context.Context, user, video primitive.ObjectID) error
	DeleteWithDependents(ctx context.Context, id primitive.ObjectID) error
}

type videoRepository struct {
	mc *dbmongo.MongoClient
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &videoRepository{mc: mc}
}

func (r *videoRepository) Create(ctx context.Context, v *dbmongo.Video) error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now

	_, err := r.mc.Collection(dbmongo.CollVideos).InsertOne(ctx, v)
	return err
}

func (r *videoRepository) ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Video, error) {
	var v dbmongo.Video
	err := r.mc.Collection(dbmongo.CollVideos).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Update applies only the fields set in patch; empty fields are left as they
// are rather than cleared.
func (r *videoRepository) Update(ctx context.Context, id primitive.ObjectID, patch UpdatePatch) error {
	set := bson.D{{Key: "updatedAt", Value: time.Now()}}
	if patch.Title != "" {
		set = append(set, bson.E{Key: "title", Value: patch.Title})
	}
	if patch.Description != "" {
		set = append(set, bson.E{Key: "description", Value: patch.Description})
	}
	if patch.Thumbnail != "" {
		set = append(set, bson.E{Key: "thumbnail", Value: patch.Thumbnail})
	}

	_, err := r.mc.Collection(dbmongo.CollVideos).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}})
	return err
}

func (r *videoRepository) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	_, err := r.mc.Collection(dbmongo.CollVideos).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "isPublished", Value: published},
			{Key: "updatedAt", Value: time.Now()},
		}}})
	return err
}

// Search builds the listing pipeline. A text query must come first so the
// text index can drive it; structural filters follow, then the owner join,
// then pagination via the shared $facet helper.
func (r *videoRepository) Search(ctx context.Context, params SearchParams) (*dbmongo.Page[dbmongo.VideoWithOwner], error) {
	var pipeline mongo.Pipeline

	if params.Query != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "$text", Value: bson.D{{Key: "$search", Value: params.Query}}},
		}}})
	}

	filter := bson.D{{Key: "isPublished", Value: true}}
	if !params.Owner.IsZero() {
		filter = append(filter, bson.E{Key: "owner", Value: params.Owner})
	}
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: filter}})

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	dir := -1
	if params.SortAsc {
		dir = 1
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: sortBy, Value: dir}}}},
		dbmongo.LookupUserPublic("owner", "owner"),
		dbmongo.FirstOf("owner"),
	)

	return dbmongo.AggregatePaginate[dbmongo.VideoWithOwner](ctx,
		r.mc.Collection(dbmongo.CollVideos), pipeline, params.Page, params.Limit)
}

func (r *videoRepository) ViewByID(ctx context.Context, id, caller primitive.ObjectID) (*DetailView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		dbmongo.LookupUserPublic("owner", "owner"),
		dbmongo.FirstOf("owner"),
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
			{Key: "isLiked", Value: bson.D{{Key: "$in", Value: bson.A{caller, "$likes.likedBy"}}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "likes", Value: 0}}}},
	}

	cursor, err := r.mc.Collection(dbmongo.CollVideos).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var views []DetailView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.mc.Collection(dbmongo.CollVideos).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}})
	return err
}

// AddToWatchHistory appends the video to the user's history, de-duplicated
// by $addToSet.
func (r *videoRepository) AddToWatchHistory(ctx context.Context, user, video primitive.ObjectID) error {
	_, err := r.mc.Collection(dbmongo.CollUsers).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: user}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "watchHistory", Value: video}}}})
	return err
}

// DeleteWithDependents removes the video and everything hanging off it:
// video-typed likes, the video's comments and those comments' likes, then
// the document itself. Like rows go first so a failure partway through can
// never leave likes pointing at a deleted parent longer than its comments.
func (r *videoRepository) DeleteWithDependents(ctx context.Context, id primitive.ObjectID) error {
	comments := r.mc.Collection(dbmongo.CollComments)
	likes := r.mc.Collection(dbmongo.CollLikes)

	cursor, err := comments.Find(ctx, bson.D{{Key: "video", Value: id}},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	var commentRows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &commentRows); err != nil {
		return err
	}

	if len(commentRows) > 0 {
		commentIDs := make([]primitive.ObjectID, 0, len(commentRows))
		for _, row := range commentRows {
			commentIDs = append(commentIDs, row.ID)
		}
		_, err = likes.DeleteMany(ctx, bson.D{
			{Key: "kind", Value: dbmongo.TargetComment},
			{Key: "target", Value: bson.D{{Key: "$in", Value: commentIDs}}},
		})
		if err != nil {
			return err
		}
	}

	_, err = likes.DeleteMany(ctx, bson.D{
		{Key: "kind", Value: dbmongo.TargetVideo},
		{Key: "target", Value: id},
	})
	if err != nil {
		return err
	}

	if _, err = comments.DeleteMany(ctx, bson.D{{Key: "video", Value: id}}); err != nil {
		return err
	}

	_, err = r.mc.Collection(dbmongo.CollVideos).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}
