package video

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/asset"
	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/logging"
)

type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	Media       *asset.File
	Thumbnail   *asset.File
}

type SearchInput struct {
	Query   string
	OwnerID string
	SortBy  string
	SortDir string
	Page    int64
	Limit   int64
}

type Service interface {
	Publish(ctx context.Context, actorID string, in PublishInput) (*dbmongo.Video, error)
	Search(ctx context.Context, in SearchInput) (*dbmongo.Page[dbmongo.VideoWithOwner], error)
	// Watch returns the single-video view and records the caller's visit:
	// the view counter is incremented and the video is appended to the
	// caller's watch history when the caller is authenticated.
	Watch(ctx context.Context, videoID, callerID string) (*DetailView, error)
	Update(ctx context.Context, actorID, videoID string, patch UpdatePatch, thumbnail *asset.File) (*dbmongo.Video, error)
	TogglePublish(ctx context.Context, actorID, videoID string) (*dbmongo.Video, error)
	// Delete removes the video with its dependent rows and returns the
	// deleted snapshot. Asset removal is best-effort and logged.
	Delete(ctx context.Context, actorID, videoID string) (*dbmongo.Video, error)
}

var sortKeys = map[string]bool{
	"createdAt": true,
	"views":     true,
	"duration":  true,
	"title":     true,
}

type videoService struct {
	videoRepo Repository
	assets    asset.Store
	log       *logging.Logger
}

func NewService(videoRepo Repository, assets asset.Store, log *logging.Logger) Service {
	return &videoService{videoRepo: videoRepo, assets: assets, log: log}
}

func (s *videoService) Publish(ctx context.Context, actorID string, in PublishInput) (*dbmongo.Video, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	if in.Title == "" {
		return nil, common.E(common.KindInvalidArgument, "title is required")
	}
	if in.Media == nil || in.Thumbnail == nil {
		return nil, common.E(common.KindInvalidArgument, "video file and thumbnail are required")
	}

	mediaURL, err := s.assets.Upload(ctx, in.Media.Name, in.Media.ContentType, in.Media.Content, in.Media.Size)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while uploading video", err)
	}
	thumbURL, err := s.assets.Upload(ctx, in.Thumbnail.Name, in.Thumbnail.ContentType, in.Thumbnail.Content, in.Thumbnail.Size)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while uploading thumbnail", err)
	}

	v := &dbmongo.Video{
		Owner:       actor,
		VideoFile:   mediaURL,
		Thumbnail:   thumbURL,
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(ctx, v); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while publishing video", err)
	}
	return v, nil
}

func (s *videoService) Search(ctx context.Context, in SearchInput) (*dbmongo.Page[dbmongo.VideoWithOwner], error) {
	params := SearchParams{
		Query: in.Query,
		Page:  in.Page,
		Limit: in.Limit,
	}

	if in.OwnerID != "" {
		owner, err := primitive.ObjectIDFromHex(in.OwnerID)
		if err != nil {
			return nil, common.E(common.KindInvalidArgument, "invalid owner ID")
		}
		params.Owner = owner
	}

	if in.SortBy != "" {
		if !sortKeys[in.SortBy] {
			return nil, common.Ef(common.KindInvalidArgument, "unsupported sort key %q", in.SortBy)
		}
		params.SortBy = in.SortBy
	}
	params.SortAsc = in.SortDir == "asc"

	page, err := s.videoRepo.Search(ctx, params)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while searching videos", err)
	}
	return page, nil
}

func (s *videoService) Watch(ctx context.Context, videoID, callerID string) (*DetailView, error) {
	id, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid video ID")
	}

	var caller primitive.ObjectID
	if callerID != "" {
		caller, err = primitive.ObjectIDFromHex(callerID)
		if err != nil {
			return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
		}
	}

	view, err := s.videoRepo.ViewByID(ctx, id, caller)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching video", err)
	}
	if view == nil {
		return nil, common.E(common.KindNotFound, "video not found")
	}

	if err := s.videoRepo.IncrementViews(ctx, id); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while recording view", err)
	}
	view.Views++

	if !caller.IsZero() {
		if err := s.videoRepo.AddToWatchHistory(ctx, caller, id); err != nil {
			return nil, common.Wrap(common.KindInternal, "error while recording watch history", err)
		}
	}
	return view, nil
}

func (s *videoService) Update(ctx context.Context, actorID, videoID string, patch UpdatePatch, thumbnail *asset.File) (*dbmongo.Video, error) {
	v, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}
	if patch.Title == "" && patch.Description == "" && thumbnail == nil {
		return nil, common.E(common.KindInvalidArgument, "atleast one field is required")
	}

	oldThumbnail := ""
	if thumbnail != nil {
		url, err := s.assets.Upload(ctx, thumbnail.Name, thumbnail.ContentType, thumbnail.Content, thumbnail.Size)
		if err != nil {
			return nil, common.Wrap(common.KindInternal, "error while uploading thumbnail", err)
		}
		patch.Thumbnail = url
		oldThumbnail = v.Thumbnail
	}

	if err := s.videoRepo.Update(ctx, v.ID, patch); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while updating video", err)
	}

	if oldThumbnail != "" {
		if delErr := s.assets.Delete(ctx, oldThumbnail, false); delErr != nil {
			s.log.ErrorWithErr("failed to delete replaced thumbnail asset", delErr)
		}
	}

	updated, err := s.videoRepo.ByID(ctx, v.ID)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while updating video", err)
	}
	return updated, nil
}

func (s *videoService) TogglePublish(ctx context.Context, actorID, videoID string) (*dbmongo.Video, error) {
	v, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.videoRepo.SetPublished(ctx, v.ID, !v.IsPublished); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while toggling publish status", err)
	}
	v.IsPublished = !v.IsPublished
	return v, nil
}

func (s *videoService) Delete(ctx context.Context, actorID, videoID string) (*dbmongo.Video, error) {
	v, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.videoRepo.DeleteWithDependents(ctx, v.ID); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while deleting video", err)
	}

	if delErr := s.assets.Delete(ctx, v.VideoFile, true); delErr != nil {
		s.log.ErrorWithErr("failed to delete video asset", delErr)
	}
	if delErr := s.assets.Delete(ctx, v.Thumbnail, false); delErr != nil {
		s.log.ErrorWithErr("failed to delete thumbnail asset", delErr)
	}
	return v, nil
}

// ownedVideo loads the video and enforces the ownership gate shared by every
// mutating operation.
func (s *videoService) ownedVideo(ctx context.Context, actorID, videoID string) (*dbmongo.Video, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	id, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid video ID")
	}

	v, err := s.videoRepo.ByID(ctx, id)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching video", err)
	}
	if v == nil {
		return nil, common.E(common.KindNotFound, "video not found")
	}
	if v.Owner != actor {
		return nil, common.E(common.KindPermissionDenied, "only the owner may modify this video")
	}
	return v, nil
}
