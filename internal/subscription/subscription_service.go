package subscription

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
)

type Service interface {
	// ToggleSubscription flips the actor's subscription to the channel and
	// returns the resulting membership: true = subscribed.
	ToggleSubscription(ctx context.Context, actorID, channelID string) (bool, error)
	ChannelSubscribers(ctx context.Context, channelID string) ([]SubscriberView, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]ChannelView, error)
}

type subscriptionService struct {
	subRepo Repository
}

func NewService(subRepo Repository) Service {
	return &subscriptionService{subRepo: subRepo}
}

func (s *subscriptionService) ToggleSubscription(ctx context.Context, actorID, channelID string) (bool, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return false, common.E(common.KindInvalidArgument, "invalid actor ID")
	}

	channel, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return false, common.E(common.KindInvalidArgument, "invalid channel ID")
	}

	// a user cannot subscribe to themselves
	if actor == channel {
		return false, common.E(common.KindInvalidArgument, "cannot subscribe to your own channel")
	}

	exists, err := s.subRepo.UserExists(ctx, channel)
	if err != nil {
		return false, common.Wrap(common.KindInternal, "error while toggling subscription", err)
	}
	if !exists {
		return false, common.E(common.KindNotFound, "channel not found")
	}

	subscribed, err := s.subRepo.Toggle(ctx, actor, channel)
	if err != nil {
		return false, common.Wrap(common.KindInternal, "error while toggling subscription", err)
	}
	return subscribed, nil
}

func (s *subscriptionService) ChannelSubscribers(ctx context.Context, channelID string) ([]SubscriberView, error) {
	channel, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid channel ID")
	}

	exists, err := s.subRepo.UserExists(ctx, channel)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching subscribers", err)
	}
	if !exists {
		return nil, common.E(common.KindNotFound, "channel not found")
	}

	subscribers, err := s.subRepo.Subscribers(ctx, channel)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching subscribers", err)
	}
	if subscribers == nil {
		subscribers = []SubscriberView{}
	}
	return subscribers, nil
}

func (s *subscriptionService) SubscribedChannels(ctx context.Context, subscriberID string) ([]ChannelView, error) {
	subscriber, err := primitive.ObjectIDFromHex(subscriberID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid subscriber ID")
	}

	exists, err := s.subRepo.UserExists(ctx, subscriber)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching subscribed channels", err)
	}
	if !exists {
		return nil, common.E(common.KindNotFound, "user not found")
	}

	channels, err := s.subRepo.SubscribedChannels(ctx, subscriber)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching subscribed channels", err)
	}
	if channels == nil {
		channels = []ChannelView{}
	}
	return channels, nil
}
