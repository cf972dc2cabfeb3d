package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/dbmongo"
)

// ChannelProfileView is the channel page: public profile fields plus the
// three derived subscription aggregates. Counts are computed live from
// subscription rows, never from stored counters.
type ChannelProfileView struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	Username          string             `bson:"username" json:"username"`
	FullName          string             `bson:"fullName" json:"fullName"`
	Avatar            string             `bson:"avatar" json:"avatar"`
	CoverImage        string             `bson:"coverImage" json:"coverImage"`
	Email             string             `bson:"email" json:"email"`
	SubscriberCount   int64              `bson:"subscriberCount" json:"subscriberCount"`
	SubscribedToCount int64              `bson:"subscribedToCount" json:"subscribedToCount"`
	IsSubscribed      bool               `bson:"isSubscribed" json:"isSubscribed"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// Lookup methods return (nil, nil) when no user matches; the service layer
// decides whether that is NotFound or Unauthenticated.
type Repository interface {
	Create(ctx context.Context, user *dbmongo.User) error
	ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.User, error)
	ByUsernameOrEmail(ctx context.Context, username, email string) (*dbmongo.User, error)
	UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) error
	UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatarURL string) error
	UpdateCoverImage(ctx context.Context, id primitive.ObjectID, coverURL string) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, tokenHash string) error
	ChannelProfile(ctx context.Context, username string, caller primitive.ObjectID) (*ChannelProfileView, error)
	WatchHistory(ctx context.Context, id primitive.ObjectID) ([]dbmongo.VideoWithOwner, error)
}

type userRepository struct {
	mc *dbmongo.MongoClient
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &userRepository{mc: mc}
}

func (r *userRepository) coll() *mongo.Collection {
	return r.mc.Collection(dbmongo.CollUsers)
}

func (r *userRepository) Create(ctx context.Context, user *dbmongo.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.WatchHistory == nil {
		user.WatchHistory = []primitive.ObjectID{}
	}
	_, err := r.coll().InsertOne(ctx, user)
	return err
}

func (r *userRepository) ByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *userRepository) ByUsernameOrEmail(ctx context.Context, username, email string) (*dbmongo.User, error) {
	return r.findOne(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "email", Value: email}},
	}}})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.D) (*dbmongo.User, error) {
	var user dbmongo.User
	err := r.coll().FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) error {
	fields := bson.D{{Key: "updatedAt", Value: time.Now()}}
	if fullName != "" {
		fields = append(fields, bson.E{Key: "fullName", Value: fullName})
	}
	if email != "" {
		fields = append(fields, bson.E{Key: "email", Value: email})
	}
	return r.setFields(ctx, id, fields)
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatarURL string) error {
	return r.setFields(ctx, id, bson.D{
		{Key: "avatar", Value: avatarURL},
		{Key: "updatedAt", Value: time.Now()},
	})
}

func (r *userRepository) UpdateCoverImage(ctx context.Context, id primitive.ObjectID, coverURL string) error {
	return r.setFields(ctx, id, bson.D{
		{Key: "coverImage", Value: coverURL},
		{Key: "updatedAt", Value: time.Now()},
	})
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.setFields(ctx, id, bson.D{
		{Key: "passwordHash", Value: passwordHash},
		{Key: "updatedAt", Value: time.Now()},
	})
}

// SetRefreshToken stores the hash of the current refresh token; an empty
// hash revokes it (logout).
func (r *userRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, tokenHash string) error {
	return r.setFields(ctx, id, bson.D{{Key: "refreshToken", Value: tokenHash}})
}

func (r *userRepository) setFields(ctx context.Context, id primitive.ObjectID, fields bson.D) error {
	_, err := r.coll().UpdateByID(ctx, id, bson.D{{Key: "$set", Value: fields}})
	return err
}

func (r *userRepository) ChannelProfile(ctx context.Context, username string, caller primitive.ObjectID) (*ChannelProfileView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "username", Value: username}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollSubscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollSubscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber"},
			{Key: "as", Value: "subscribedTo"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "subscriberCount", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "subscribedToCount", Value: bson.D{{Key: "$size", Value: "$subscribedTo"}}},
			{Key: "isSubscribed", Value: bson.D{{Key: "$in", Value: bson.A{caller, "$subscribers.subscriber"}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "email", Value: 1},
			{Key: "subscriberCount", Value: 1},
			{Key: "subscribedToCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
			{Key: "createdAt", Value: 1},
		}}},
	}

	cursor, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var views []ChannelProfileView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

func (r *userRepository) WatchHistory(ctx context.Context, id primitive.ObjectID) ([]dbmongo.VideoWithOwner, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.CollVideos},
			{Key: "localField", Value: "watchHistory"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "watchHistory"},
			{Key: "pipeline", Value: bson.A{
				dbmongo.LookupUserPublic("owner", "owner"),
				dbmongo.FirstOf("owner"),
			}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "watchHistory", Value: 1}}}},
	}

	cursor, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		WatchHistory []dbmongo.VideoWithOwner `bson:"watchHistory"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0].WatchHistory, nil
}
