package subscription

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
)

func TestSubscriptionService_ToggleSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo)
	ctx := context.Background()

	actor := primitive.NewObjectID()
	channel := primitive.NewObjectID()

	tests := []struct {
		name           string
		actorID        string
		channelID      string
		setup          func()
		wantSubscribed bool
		wantKind       common.Kind
		wantErr        bool
	}{
		{
			name:      "subscribe",
			actorID:   actor.Hex(),
			channelID: channel.Hex(),
			setup: func() {
				mockRepo.EXPECT().UserExists(ctx, channel).Return(true, nil)
				mockRepo.EXPECT().Toggle(ctx, actor, channel).Return(true, nil)
			},
			wantSubscribed: true,
		},
		{
			name:      "unsubscribe",
			actorID:   actor.Hex(),
			channelID: channel.Hex(),
			setup: func() {
				mockRepo.EXPECT().UserExists(ctx, channel).Return(true, nil)
				mockRepo.EXPECT().Toggle(ctx, actor, channel).Return(false, nil)
			},
			wantSubscribed: false,
		},
		{
			// self subscription never reaches the store
			name:      "self subscription forbidden",
			actorID:   actor.Hex(),
			channelID: actor.Hex(),
			setup:     func() {},
			wantErr:   true,
			wantKind:  common.KindInvalidArgument,
		},
		{
			name:      "channel missing",
			actorID:   actor.Hex(),
			channelID: channel.Hex(),
			setup: func() {
				mockRepo.EXPECT().UserExists(ctx, channel).Return(false, nil)
			},
			wantErr:  true,
			wantKind: common.KindNotFound,
		},
		{
			name:      "malformed channel id",
			actorID:   actor.Hex(),
			channelID: "42",
			setup:     func() {},
			wantErr:   true,
			wantKind:  common.KindInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			subscribed, err := svc.ToggleSubscription(ctx, tt.actorID, tt.channelID)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, tt.wantKind, common.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantSubscribed, subscribed)
		})
	}
}

func TestSubscriptionService_ChannelSubscribers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo)
	ctx := context.Background()

	channel := primitive.NewObjectID()

	t.Run("missing channel", func(t *testing.T) {
		mockRepo.EXPECT().UserExists(ctx, channel).Return(false, nil)
		_, err := svc.ChannelSubscribers(ctx, channel.Hex())
		require.Equal(t, common.KindNotFound, common.KindOf(err))
	})

	t.Run("empty list", func(t *testing.T) {
		mockRepo.EXPECT().UserExists(ctx, channel).Return(true, nil)
		mockRepo.EXPECT().Subscribers(ctx, channel).Return(nil, nil)
		subs, err := svc.ChannelSubscribers(ctx, channel.Hex())
		require.NoError(t, err)
		require.NotNil(t, subs)
		require.Len(t, subs, 0)
	})
}
