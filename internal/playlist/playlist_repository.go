package playlist

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/dbmongo"
)

// DetailView is the playlist page: owner public profile plus the member
// videos that are currently published, each with its own owner profile.
// Unpublished members are filtered at read time, never removed from the
// stored video list.
type DetailView struct {
	ID          primitive.ObjectID       `bson:"_id" json:"id"`
	Name        string                   `bson:"name" json:"name"`
	Description string                   `bson:"description" json:"description"`
	Owner       dbmongo.UserPublic       `bson:"owner" json:"owner"`
	Videos      []dbmongo.VideoWithOwner `bson:"videos" json:"videos"`
	CreatedAt   time.Time                `bson:"createdAt" json:"createdAt"`
}

// OwnerView is one row of a user's playlist list with membership aggregates.
type OwnerView struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	TotalVideos int64              `bson:"totalVideos" json:"totalVideos"`
	TotalViews  int64              `bson:"totalViews" json:"totalViews"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, p *dbmongo.Playlist) error
	ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Playlist, error)
	ByOwner(ctx context.Context, owner primitive.ObjectID) ([]OwnerView, error)
	Detail(ctx context.Context, id primitive.ObjectID) (*DetailView, error)
	Update(ctx context.Context, id primitive.ObjectID, name, description string) error
	AddVideo(ctx context.Context, id, video primitive.ObjectID) error
	RemoveVideo(ctx context.Context, id, video primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	VideoExists(ctx context.Context, video primitive.ObjectID) (bool, error)
}

type playlistRepository struct {
	mc *dbmongo.MongoClient
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &playlistRepository{mc: mc}
}

func (r *playlistRepository) Create(ctx context.Context, p *dbmongo.Playlist) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Videos == nil {
		p.Videos = []primitive.ObjectID{}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.mc.Collection(dbmongo.CollPlaylists).InsertOne(ctx, p)
	return err
}

func (r *playlistRepository) ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Playlist, error) {
	var p dbmongo.Playlist
	err := r.mc.Collection(dbmongo.CollPlaylists).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ByOwner lists a user's playlists with totalVideos from the stored member
// list and totalViews summed over the joined video documents.
func (r *playlistRepository) ByOwner(ctx context.Context, owner primitive.ObjectID) ([]OwnerView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollVideos},
			{Key: "localField", Value: "videos"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "memberVideos"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "totalVideos", Value: bson.D{{Key: "$size", Value: "$videos"}}},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$memberVideos.views"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "memberVideos", Value: 0}}}},
	}

	cursor, err := r.mc.Collection(dbmongo.CollPlaylists).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var views []OwnerView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *playlistRepository) Detail(ctx context.Context, id primitive.ObjectID) (*DetailView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		dbmongo.LookupUserPublic("owner", "owner"),
		dbmongo.FirstOf("owner"),
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollVideos},
			{Key: "localField", Value: "videos"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "videos"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "isPublished", Value: true}}}},
				dbmongo.LookupUserPublic("owner", "owner"),
				dbmongo.FirstOf("owner"),
			}},
		}}},
	}

	cursor, err := r.mc.Collection(dbmongo.CollPlaylists).Aggregate(ctx, pipeline)
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

func (r *playlistRepository) Update(ctx context.Context, id primitive.ObjectID, name, description string) error {
	set := bson.D{{Key: "updatedAt", Value: time.Now()}}
	if name != "" {
		set = append(set, bson.E{Key: "name", Value: name})
	}
	if description != "" {
		set = append(set, bson.E{Key: "description", Value: description})
	}

	_, err := r.mc.Collection(dbmongo.CollPlaylists).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}})
	return err
}

// AddVideo uses $addToSet so a concurrent duplicate add cannot produce two
// entries even after the service-level membership check passed for both.
func (r *playlistRepository) AddVideo(ctx context.Context, id, video primitive.ObjectID) error {
	_, err := r.mc.Collection(dbmongo.CollPlaylists).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{
			{Key: "$addToSet", Value: bson.D{{Key: "videos", Value: video}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
		})
	return err
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, id, video primitive.ObjectID) error {
	_, err := r.mc.Collection(dbmongo.CollPlaylists).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "videos", Value: video}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
		})
	return err
}

func (r *playlistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.mc.Collection(dbmongo.CollPlaylists).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func (r *playlistRepository) VideoExists(ctx context.Context, video primitive.ObjectID) (bool, error) {
	count, err := r.mc.Collection(dbmongo.CollVideos).CountDocuments(ctx, bson.D{{Key: "_id", Value: video}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
