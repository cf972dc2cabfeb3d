package tweet

import (
	"context"
	"strings"
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

func TestTweetService_Create(t *testing.T) {
	ctx := context.Background()
	actor := primitive.NewObjectID()

	tests := []struct {
		name     string
		content  string
		setup    func(repo *MockRepository)
		wantKind common.Kind
		wantErr  bool
	}{
		{
			name:    "success",
			content: "hello world",
			setup: func(repo *MockRepository) {
				repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, tw *dbmongo.Tweet) error {
						tw.ID = primitive.NewObjectID()
						return nil
					})
			},
		},
		{
			name:     "blank content",
			content:  "   ",
			setup:    func(*MockRepository) {},
			wantErr:  true,
			wantKind: common.KindInvalidArgument,
		},
		{
			name:     "content too long",
			content:  strings.Repeat("a", common.MaxTweetLength+1),
			setup:    func(*MockRepository) {},
			wantErr:  true,
			wantKind: common.KindInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			tt.setup(repo)

			tw, err := svc.Create(ctx, actor.Hex(), tt.content)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, tt.wantKind, common.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, actor, tw.Owner)
			require.Equal(t, "hello world", tw.Content)
		})
	}
}

func TestTweetService_Create_LengthCountsCharacters(t *testing.T) {
	ctx := context.Background()
	actor := primitive.NewObjectID()

	t.Run("max length multibyte content accepted", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, tw *dbmongo.Tweet) error {
				tw.ID = primitive.NewObjectID()
				return nil
			})

		// 255 characters but 510 bytes
		content := strings.Repeat("é", common.MaxTweetLength)
		tw, err := svc.Create(ctx, actor.Hex(), content)
		require.NoError(t, err)
		require.Equal(t, content, tw.Content)
	})

	t.Run("one character over the limit rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, actor.Hex(), strings.Repeat("é", common.MaxTweetLength+1))
		require.Equal(t, common.KindInvalidArgument, common.KindOf(err))
	})
}

func TestTweetService_ListForOwner(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()

	t.Run("unknown user", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().UserExists(ctx, owner).Return(false, nil)

		_, err := svc.ListForOwner(ctx, owner.Hex())
		require.Equal(t, common.KindNotFound, common.KindOf(err))
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().UserExists(ctx, owner).Return(true, nil)
		repo.EXPECT().ListForOwner(ctx, owner).Return(nil, nil)

		views, err := svc.ListForOwner(ctx, owner.Hex())
		require.NoError(t, err)
		require.NotNil(t, views)
		require.Empty(t, views)
	})
}

func TestTweetService_OwnershipGate(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	stored := &dbmongo.Tweet{ID: primitive.NewObjectID(), Owner: owner, Content: "kept"}

	t.Run("stranger cannot update", func(t *testing.T) {
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
}

func TestTweetService_DeleteCascadesLikes(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stored := &dbmongo.Tweet{ID: primitive.NewObjectID(), Owner: owner, Content: "bye"}

	svc, repo := newTestService(t)
	repo.EXPECT().ByID(ctx, stored.ID).Return(stored, nil)
	repo.EXPECT().DeleteWithLikes(ctx, stored.ID).Return(nil)

	snapshot, err := svc.Delete(ctx, owner.Hex(), stored.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "bye", snapshot.Content)
}
