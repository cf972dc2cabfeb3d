package tweet

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

type Service interface {
	Create(ctx context.Context, actorID, content string) (*dbmongo.Tweet, error)
	ListForOwner(ctx context.Context, ownerID string) ([]View, error)
	Update(ctx context.Context, actorID, tweetID, content string) (*dbmongo.Tweet, error)
	Delete(ctx context.Context, actorID, tweetID string) (*dbmongo.Tweet, error)
}

type tweetService struct {
	tweetRepo Repository
}

func NewService(tweetRepo Repository) Service {
	return &tweetService{tweetRepo: tweetRepo}
}

func validContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", common.E(common.KindInvalidArgument, "content is required")
	}
	// length is counted in characters, not bytes
	if utf8.RuneCountInString(content) > common.MaxTweetLength {
		return "", common.Ef(common.KindInvalidArgument, "content must be at most %d characters", common.MaxTweetLength)
	}
	return content, nil
}

func (s *tweetService) Create(ctx context.Context, actorID, content string) (*dbmongo.Tweet, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	content, err = validContent(content)
	if err != nil {
		return nil, err
	}

	t := &dbmongo.Tweet{Owner: actor, Content: content}
	if err := s.tweetRepo.Create(ctx, t); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while creating tweet", err)
	}
	return t, nil
}

func (s *tweetService) ListForOwner(ctx context.Context, ownerID string) ([]View, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid user ID")
	}

	exists, err := s.tweetRepo.UserExists(ctx, owner)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while listing tweets", err)
	}
	if !exists {
		return nil, common.E(common.KindNotFound, "user not found")
	}

	views, err := s.tweetRepo.ListForOwner(ctx, owner)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while listing tweets", err)
	}
	if views == nil {
		views = []View{}
	}
	return views, nil
}

func (s *tweetService) Update(ctx context.Context, actorID, tweetID, content string) (*dbmongo.Tweet, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	t, err := s.ownedTweet(ctx, actorID, tweetID)
	if err != nil {
		return nil, err
	}

	if err := s.tweetRepo.UpdateContent(ctx, t.ID, content); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while updating tweet", err)
	}
	t.Content = content
	return t, nil
}

func (s *tweetService) Delete(ctx context.Context, actorID, tweetID string) (*dbmongo.Tweet, error) {
	t, err := s.ownedTweet(ctx, actorID, tweetID)
	if err != nil {
		return nil, err
	}

	if err := s.tweetRepo.DeleteWithLikes(ctx, t.ID); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while deleting tweet", err)
	}
	return t, nil
}

func (s *tweetService) ownedTweet(ctx context.Context, actorID, tweetID string) (*dbmongo.Tweet, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	id, err := primitive.ObjectIDFromHex(tweetID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid tweet ID")
	}

	t, err := s.tweetRepo.ByID(ctx, id)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching tweet", err)
	}
	if t == nil {
		return nil, common.E(common.KindNotFound, "tweet not found")
	}
	if t.Owner != actor {
		return nil, common.E(common.KindPermissionDenied, "only the owner may modify this tweet")
	}
	return t, nil
}
