package playlist

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

type Service interface {
	Create(ctx context.Context, actorID, name, description string) (*dbmongo.Playlist, error)
	ByOwner(ctx context.Context, ownerID string) ([]OwnerView, error)
	Detail(ctx context.Context, playlistID string) (*DetailView, error)
	Update(ctx context.Context, actorID, playlistID, name, description string) (*dbmongo.Playlist, error)
	// AddVideo and RemoveVideo enforce set semantics strictly: adding a
	// member that is already present, or removing one that is not, is an
	// invalid request rather than a no-op.
	AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*dbmongo.Playlist, error)
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*dbmongo.Playlist, error)
	Delete(ctx context.Context, actorID, playlistID string) (*dbmongo.Playlist, error)
}

type playlistService struct {
	playlistRepo Repository
}

func NewService(playlistRepo Repository) Service {
	return &playlistService{playlistRepo: playlistRepo}
}

func (s *playlistService) Create(ctx context.Context, actorID, name, description string) (*dbmongo.Playlist, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.E(common.KindInvalidArgument, "name is required")
	}

	p := &dbmongo.Playlist{Name: name, Description: description, Owner: actor}
	if err := s.playlistRepo.Create(ctx, p); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while creating playlist", err)
	}
	return p, nil
}

func (s *playlistService) ByOwner(ctx context.Context, ownerID string) ([]OwnerView, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid user ID")
	}

	views, err := s.playlistRepo.ByOwner(ctx, owner)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while listing playlists", err)
	}
	if views == nil {
		views = []OwnerView{}
	}
	return views, nil
}

func (s *playlistService) Detail(ctx context.Context, playlistID string) (*DetailView, error) {
	id, err := primitive.ObjectIDFromHex(playlistID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid playlist ID")
	}

	view, err := s.playlistRepo.Detail(ctx, id)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching playlist", err)
	}
	if view == nil {
		return nil, common.E(common.KindNotFound, "playlist not found")
	}
	return view, nil
}

func (s *playlistService) Update(ctx context.Context, actorID, playlistID, name, description string) (*dbmongo.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" && description == "" {
		return nil, common.E(common.KindInvalidArgument, "atleast one field is required")
	}

	p, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	if err := s.playlistRepo.Update(ctx, p.ID, name, description); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while updating playlist", err)
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	return p, nil
}

func (s *playlistService) AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*dbmongo.Playlist, error) {
	p, video, err := s.membershipTarget(ctx, actorID, playlistID, videoID)
	if err != nil {
		return nil, err
	}

	if contains(p.Videos, video) {
		return nil, common.E(common.KindInvalidArgument, "video is already in the playlist")
	}

	exists, err := s.playlistRepo.VideoExists(ctx, video)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while adding video to playlist", err)
	}
	if !exists {
		return nil, common.E(common.KindNotFound, "video not found")
	}

	if err := s.playlistRepo.AddVideo(ctx, p.ID, video); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while adding video to playlist", err)
	}
	p.Videos = append(p.Videos, video)
	return p, nil
}

func (s *playlistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*dbmongo.Playlist, error) {
	p, video, err := s.membershipTarget(ctx, actorID, playlistID, videoID)
	if err != nil {
		return nil, err
	}

	if !contains(p.Videos, video) {
		return nil, common.E(common.KindInvalidArgument, "video is not in the playlist")
	}

	if err := s.playlistRepo.RemoveVideo(ctx, p.ID, video); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while removing video from playlist", err)
	}

	kept := p.Videos[:0]
	for _, v := range p.Videos {
		if v != video {
			kept = append(kept, v)
		}
	}
	p.Videos = kept
	return p, nil
}

func (s *playlistService) Delete(ctx context.Context, actorID, playlistID string) (*dbmongo.Playlist, error) {
	p, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	if err := s.playlistRepo.Delete(ctx, p.ID); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while deleting playlist", err)
	}
	return p, nil
}

func (s *playlistService) membershipTarget(ctx context.Context, actorID, playlistID, videoID string) (*dbmongo.Playlist, primitive.ObjectID, error) {
	video, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, primitive.NilObjectID, common.E(common.KindInvalidArgument, "invalid video ID")
	}

	p, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	return p, video, nil
}

func (s *playlistService) ownedPlaylist(ctx context.Context, actorID, playlistID string) (*dbmongo.Playlist, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	id, err := primitive.ObjectIDFromHex(playlistID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid playlist ID")
	}

	p, err := s.playlistRepo.ByID(ctx, id)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching playlist", err)
	}
	if p == nil {
		return nil, common.E(common.KindNotFound, "playlist not found")
	}
	if p.Owner != actor {
		return nil, common.E(common.KindPermissionDenied, "only the owner may modify this playlist")
	}
	return p, nil
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
