package comment

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

func newTestService(t *testing.T) (Service, *MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := NewMockRepository(ctrl)
	return NewService(mockRepo), mockRepo
}

func TestCommentService_ListForVideo(t *testing.T) {
	ctx := context.Background()
	videoID := primitive.NewObjectID()

	t.Run("missing video", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().VideoExists(ctx, videoID).Return(false, nil)

		_, err := svc.ListForVideo(ctx, videoID.Hex(), 1, 10)
		require.Equal(t, common.KindNotFound, common.KindOf(err))
	})

	t.Run("passes pagination through", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().VideoExists(ctx, videoID).Return(true, nil)
		repo.EXPECT().ListForVideo(ctx, videoID, int64(3), int64(20)).
			Return(&dbmongo.Page[View]{Items: []View{}, Page: 3, Limit: 20}, nil)

		page, err := svc.ListForVideo(ctx, videoID.Hex(), 3, 20)
		require.NoError(t, err)
		require.Equal(t, int64(3), page.Page)
	})

	t.Run("malformed video id", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.ListForVideo(ctx, "not-an-id", 1, 10)
		require.Equal(t, common.KindInvalidArgument, common.KindOf(err))
	})
}

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()
	actor := primitive.NewObjectID()
	videoID := primitive.NewObjectID()

	tests := []struct {
		name     string
		videoID  string
		content  string
		setup    func(repo *MockRepository)
		wantKind common.Kind
		wantErr  bool
	}{
		{
			name:    "success",
			videoID: videoID.Hex(),
			content: "  nice video  ",
			setup: func(repo *MockRepository) {
				repo.EXPECT().VideoExists(ctx, videoID).Return(true, nil)
				repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, c *dbmongo.Comment) error {
						c.ID = primitive.NewObjectID()
						return nil
					})
			},
		},
		{
			name:     "blank content",
			videoID:  videoID.Hex(),
			content:  "   ",
			setup:    func(*MockRepository) {},
			wantErr:  true,
			wantKind: common.KindInvalidArgument,
		},
		{
			name:    "video gone",
			videoID: videoID.Hex(),
			content: "hello",
			setup: func(repo *MockRepository) {
				repo.EXPECT().VideoExists(ctx, videoID).Return(false, nil)
			},
			wantErr:  true,
			wantKind: common.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			tt.setup(repo)

			c, err := svc.Add(ctx, actor.Hex(), tt.videoID, tt.content)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, tt.wantKind, common.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, "nice video", c.Content) // stored trimmed
			require.Equal(t, actor, c.Owner)
		})
	}
}

func TestCommentService_OwnershipGate(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	stored := &dbmongo.Comment{ID: primitive.NewObjectID(), Owner: owner, Content: "kept"}

	t.Run("stranger cannot update; content unchanged", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().ByID(ctx, stored.ID).Return(stored, nil)

		_, err := svc.Update(ctx, stranger.Hex(), stored.ID.Hex(), "hijacked")
		require.Equal(t, common.KindPermissionDenied, common.KindOf(err))
		require.Equal(t, "kept", stored.Content)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().ByID(ctx, stored.ID).Return(stored, nil)

		_, err := svc.Delete(ctx, stranger.Hex(), stored.ID.Hex())
		require.Equal(t, common.KindPermissionDenied, common.KindOf(err))
	})

	t.Run("absent comment is not found", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().ByID(ctx, stored.ID).Return(nil, nil)

		_, err := svc.Delete(ctx, owner.Hex(), stored.ID.Hex())
		require.Equal(t, common.KindNotFound, common.KindOf(err))
	})
}

func TestCommentService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()

	t.Run("update rewrites content", func(t *testing.T) {
		svc, repo := newTestService(t)
		stored := &dbmongo.Comment{ID: primitive.NewObjectID(), Owner: owner, Content: "old"}
		repo.EXPECT().ByID(ctx, stored.ID).Return(stored, nil)
		repo.EXPECT().UpdateContent(ctx, stored.ID, "new").Return(nil)

		c, err := svc.Update(ctx, owner.Hex(), stored.ID.Hex(), "new")
		require.NoError(t, err)
		require.Equal(t, "new", c.Content)
	})

	t.Run("delete cascades likes and returns snapshot", func(t *testing.T) {
		svc, repo := newTestService(t)
		stored := &dbmongo.Comment{ID: primitive.NewObjectID(), Owner: owner, Content: "bye"}
		repo.EXPECT().ByID(ctx, stored.ID).Return(stored, nil)
		repo.EXPECT().DeleteWithLikes(ctx, stored.ID).Return(nil)

		snapshot, err := svc.Delete(ctx, owner.Hex(), stored.ID.Hex())
		require.NoError(t, err)
		require.Equal(t, "bye", snapshot.Content)
	})
}
