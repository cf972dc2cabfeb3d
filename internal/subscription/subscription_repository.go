package subscription

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/dbmongo"
)

// SubscriberView is one subscription row with the subscriber collapsed to a
// public profile.
type SubscriberView struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Subscriber dbmongo.UserPublic `bson:"subscriber" json:"subscriber"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// ChannelView is one subscription row with the channel collapsed to a public
// profile.
type ChannelView struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Channel   dbmongo.UserPublic `bson:"channel" json:"channel"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Repository interface {
	// Toggle flips the (subscriber, channel) membership and reports the
	// resulting state: true = subscribed.
	Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
	UserExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Subscribers(ctx context.Context, channel primitive.ObjectID) ([]SubscriberView, error)
	SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]ChannelView, error)
}

type subscriptionRepository struct {
	mc *dbmongo.MongoClient
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &subscriptionRepository{mc: mc}
}

// Toggle uses the same delete-first protocol as likes; the unique
// (subscriber, channel) index closes the concurrent-insert race.
func (r *subscriptionRepository) Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	coll := r.mc.Collection(dbmongo.CollSubscriptions)

	filter := bson.D{
		{Key: "subscriber", Value: subscriber},
		{Key: "channel", Value: channel},
	}

	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	_, err = coll.InsertOne(ctx, dbmongo.Subscription{
		ID:         primitive.NewObjectID(),
		Subscriber: subscriber,
		Channel:    channel,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *subscriptionRepository) UserExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.mc.Collection(dbmongo.CollUsers).CountDocuments(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) Subscribers(ctx context.Context, channel primitive.ObjectID) ([]SubscriberView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "channel", Value: channel}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		dbmongo.LookupUserPublic("subscriber", "subscriber"),
		dbmongo.FirstOf("subscriber"),
	}
	return aggregate[SubscriberView](ctx, r.mc, pipeline)
}

func (r *subscriptionRepository) SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]ChannelView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "subscriber", Value: subscriber}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		dbmongo.LookupUserPublic("channel", "channel"),
		dbmongo.FirstOf("channel"),
	}
	return aggregate[ChannelView](ctx, r.mc, pipeline)
}

func aggregate[T any](ctx context.Context, mc *dbmongo.MongoClient, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := mc.Collection(dbmongo.CollSubscriptions).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
