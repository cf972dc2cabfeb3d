package dashboard

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

// Service serves the owner-only channel views; the actor is always the
// channel being reported on.
type Service interface {
	Stats(ctx context.Context, actorID string) (*Stats, error)
	ChannelVideos(ctx context.Context, actorID string, page, limit int64) (*dbmongo.Page[ChannelVideoView], error)
}

type dashboardService struct {
	dashboardRepo Repository
}

func NewService(dashboardRepo Repository) Service {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

func (s *dashboardService) Stats(ctx context.Context, actorID string) (*Stats, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}

	stats, err := s.dashboardRepo.Stats(ctx, actor)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching channel stats", err)
	}
	return stats, nil
}

func (s *dashboardService) ChannelVideos(ctx context.Context, actorID string, page, limit int64) (*dbmongo.Page[ChannelVideoView], error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}

	result, err := s.dashboardRepo.ChannelVideos(ctx, actor, page, limit)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching channel videos", err)
	}
	return result, nil
}
