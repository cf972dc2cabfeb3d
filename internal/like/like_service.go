package like

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

type Service interface {
	// ToggleLike flips the actor's like on the target and returns the
	// resulting membership: true = liked, false = unliked.
	ToggleLike(ctx context.Context, actorID string, kind dbmongo.TargetKind, targetID string) (bool, error)
	LikedVideos(ctx context.Context, actorID string) ([]LikedVideoView, error)
}

type likeService struct {
	likeRepo Repository
}

func NewService(likeRepo Repository) Service {
	return &likeService{likeRepo: likeRepo}
}

func (s *likeService) ToggleLike(ctx context.Context, actorID string, kind dbmongo.TargetKind, targetID string) (bool, error) {
	if !kind.Valid() {
		return false, common.Ef(common.KindInvalidArgument, "invalid like target kind %q", kind)
	}

	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return false, common.E(common.KindInvalidArgument, "invalid actor ID")
	}

	target, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return false, common.Ef(common.KindInvalidArgument, "invalid %s ID", kind)
	}

	exists, err := s.likeRepo.TargetExists(ctx, kind, target)
	if err != nil {
		return false, common.Wrap(common.KindInternal, "error while toggling like", err)
	}
	if !exists {
		return false, common.Ef(common.KindNotFound, "%s not found", kind)
	}

	liked, err := s.likeRepo.Toggle(ctx, kind, target, actor)
	if err != nil {
		return false, common.Wrap(common.KindInternal, "error while toggling like", err)
	}
	return liked, nil
}

func (s *likeService) LikedVideos(ctx context.Context, actorID string) ([]LikedVideoView, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}

	videos, err := s.likeRepo.LikedVideos(ctx, actor)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching liked videos", err)
	}
	if videos == nil {
		videos = []LikedVideoView{}
	}
	return videos, nil
}
