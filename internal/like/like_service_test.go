package like

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

func TestLikeService_ToggleLike(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo)
	ctx := context.Background()

	actor := primitive.NewObjectID()
	target := primitive.NewObjectID()

	tests := []struct {
		name      string
		actorID   string
		kind      dbmongo.TargetKind
		targetID  string
		setup     func()
		wantLiked bool
		wantKind  common.Kind
		wantErr   bool
	}{
		{
			name:     "like a video",
			actorID:  actor.Hex(),
			kind:     dbmongo.TargetVideo,
			targetID: target.Hex(),
			setup: func() {
				mockRepo.EXPECT().TargetExists(ctx, dbmongo.TargetVideo, target).Return(true, nil)
				mockRepo.EXPECT().Toggle(ctx, dbmongo.TargetVideo, target, actor).Return(true, nil)
			},
			wantLiked: true,
		},
		{
			name:     "unlike a comment",
			actorID:  actor.Hex(),
			kind:     dbmongo.TargetComment,
			targetID: target.Hex(),
			setup: func() {
				mockRepo.EXPECT().TargetExists(ctx, dbmongo.TargetComment, target).Return(true, nil)
				mockRepo.EXPECT().Toggle(ctx, dbmongo.TargetComment, target, actor).Return(false, nil)
			},
			wantLiked: false,
		},
		{
			name:     "invalid target id",
			actorID:  actor.Hex(),
			kind:     dbmongo.TargetVideo,
			targetID: "not-an-id",
			setup:    func() {},
			wantErr:  true,
			wantKind: common.KindInvalidArgument,
		},
		{
			name:     "invalid kind",
			actorID:  actor.Hex(),
			kind:     dbmongo.TargetKind("playlist"),
			targetID: target.Hex(),
			setup:    func() {},
			wantErr:  true,
			wantKind: common.KindInvalidArgument,
		},
		{
			name:     "missing target",
			actorID:  actor.Hex(),
			kind:     dbmongo.TargetTweet,
			targetID: target.Hex(),
			setup: func() {
				mockRepo.EXPECT().TargetExists(ctx, dbmongo.TargetTweet, target).Return(false, nil)
			},
			wantErr:  true,
			wantKind: common.KindNotFound,
		},
		{
			name:     "store fault surfaces as internal",
			actorID:  actor.Hex(),
			kind:     dbmongo.TargetVideo,
			targetID: target.Hex(),
			setup: func() {
				mockRepo.EXPECT().TargetExists(ctx, dbmongo.TargetVideo, target).Return(true, nil)
				mockRepo.EXPECT().Toggle(ctx, dbmongo.TargetVideo, target, actor).Return(false, errors.New("socket closed"))
			},
			wantErr:  true,
			wantKind: common.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			liked, err := svc.ToggleLike(ctx, tt.actorID, tt.kind, tt.targetID)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, tt.wantKind, common.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantLiked, liked)
		})
	}
}

// Double toggle returns to the original membership state.
func TestLikeService_DoubleToggleRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo)
	ctx := context.Background()

	actor := primitive.NewObjectID()
	target := primitive.NewObjectID()

	mockRepo.EXPECT().TargetExists(ctx, dbmongo.TargetVideo, target).Return(true, nil).Times(2)
	gomock.InOrder(
		mockRepo.EXPECT().Toggle(ctx, dbmongo.TargetVideo, target, actor).Return(true, nil),
		mockRepo.EXPECT().Toggle(ctx, dbmongo.TargetVideo, target, actor).Return(false, nil),
	)

	liked, err := svc.ToggleLike(ctx, actor.Hex(), dbmongo.TargetVideo, target.Hex())
	require.NoError(t, err)
	require.True(t, liked)

	liked, err = svc.ToggleLike(ctx, actor.Hex(), dbmongo.TargetVideo, target.Hex())
	require.NoError(t, err)
	require.False(t, liked)
}

func TestLikeService_LikedVideos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo)
	ctx := context.Background()

	actor := primitive.NewObjectID()

	t.Run("empty result is an empty slice", func(t *testing.T) {
		mockRepo.EXPECT().LikedVideos(ctx, actor).Return(nil, nil)
		videos, err := svc.LikedVideos(ctx, actor.Hex())
		require.NoError(t, err)
		require.NotNil(t, videos)
		require.Len(t, videos, 0)
	})

	t.Run("invalid actor id", func(t *testing.T) {
		_, err := svc.LikedVideos(ctx, "xyz")
		require.Equal(t, common.KindInvalidArgument, common.KindOf(err))
	})
}
