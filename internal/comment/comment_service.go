package comment

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

type Service interface {
	ListForVideo(ctx context.Context, videoID string, page, limit int64) (*dbmongo.Page[View], error)
	Add(ctx context.Context, actorID, videoID, content string) (*dbmongo.Comment, error)
	Update(ctx context.Context, actorID, commentID, content string) (*dbmongo.Comment, error)
	// Delete removes the comment and its like rows, returning the deleted
	// snapshot.
	Delete(ctx context.Context, actorID, commentID string) (*dbmongo.Comment, error)
}

type commentService struct {
	commentRepo Repository
}

func NewService(commentRepo Repository) Service {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) ListForVideo(ctx context.Context, videoID string, page, limit int64) (*dbmongo.Page[View], error) {
	video, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid video ID")
	}

	exists, err := s.commentRepo.VideoExists(ctx, video)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while listing comments", err)
	}
	if !exists {
		return nil, common.E(common.KindNotFound, "video not found")
	}

	result, err := s.commentRepo.ListForVideo(ctx, video, page, limit)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while listing comments", err)
	}
	return result, nil
}

func (s *commentService) Add(ctx context.Context, actorID, videoID, content string) (*dbmongo.Comment, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	video, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid video ID")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.E(common.KindInvalidArgument, "content is required")
	}

	exists, err := s.commentRepo.VideoExists(ctx, video)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while adding comment", err)
	}
	if !exists {
		return nil, common.E(common.KindNotFound, "video not found")
	}

	c := &dbmongo.Comment{
		Content: content,
		Video:   video,
		Owner:   actor,
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while adding comment", err)
	}
	return c, nil
}

func (s *commentService) Update(ctx context.Context, actorID, commentID, content string) (*dbmongo.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.E(common.KindInvalidArgument, "content is required")
	}

	c, err := s.ownedComment(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(ctx, c.ID, content); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while updating comment", err)
	}
	c.Content = content
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, actorID, commentID string) (*dbmongo.Comment, error) {
	c, err := s.ownedComment(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.DeleteWithLikes(ctx, c.ID); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while deleting comment", err)
	}
	return c, nil
}

func (s *commentService) ownedComment(ctx context.Context, actorID, commentID string) (*dbmongo.Comment, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	id, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid comment ID")
	}

	c, err := s.commentRepo.ByID(ctx, id)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching comment", err)
	}
	if c == nil {
		return nil, common.E(common.KindNotFound, "comment not found")
	}
	if c.Owner != actor {
		return nil, common.E(common.KindPermissionDenied, "only the owner may modify this comment")
	}
	return c, nil
}
