package user

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/asset"
	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/logging"
)

type stubAssetStore struct {
	uploads int
	deleted []string
}

func (s *stubAssetStore) Upload(_ context.Context, filename, _ string, _ io.Reader, _ int64) (string, error) {
	s.uploads++
	return fmt.Sprintf("http://assets/vidtube-media/%d-%s", s.uploads, filename), nil
}

func (s *stubAssetStore) Delete(_ context.Context, assetURL string, _ bool) error {
	s.deleted = append(s.deleted, assetURL)
	return nil
}

func newTestService(t *testing.T) (Service, *MockRepository, *stubAssetStore) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := NewMockRepository(ctrl)
	assets := &stubAssetStore{}
	tokens := common.NewTokenManager("access", "refresh", time.Hour, 24*time.Hour)
	svc := NewService(mockRepo, assets, tokens, logging.NewTestLogger())
	return svc, mockRepo, assets
}

func avatarFile() *asset.File {
	return &asset.File{
		Name:        "avatar.png",
		ContentType: "image/png",
		Size:        4,
		Content:     strings.NewReader("data"),
	}
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		in       RegisterInput
		setup    func(repo *MockRepository)
		wantKind common.Kind
		wantErr  bool
	}{
		{
			name: "success",
			in: RegisterInput{
				Username: "Alice",
				Email:    "alice@example.com",
				FullName: "Alice A",
				Password: "Password123",
				Avatar:   avatarFile(),
			},
			setup: func(repo *MockRepository) {
				repo.EXPECT().ByUsernameOrEmail(ctx, "alice", "alice@example.com").Return(nil, nil)
				repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, u *dbmongo.User) error {
						u.ID = primitive.NewObjectID()
						return nil
					})
			},
		},
		{
			name: "duplicate username",
			in: RegisterInput{
				Username: "bob",
				Email:    "bob@example.com",
				FullName: "Bob B",
				Password: "Password123",
				Avatar:   avatarFile(),
			},
			setup: func(repo *MockRepository) {
				repo.EXPECT().ByUsernameOrEmail(ctx, "bob", "bob@example.com").
					Return(&dbmongo.User{Username: "bob"}, nil)
			},
			wantErr:  true,
			wantKind: common.KindConflict,
		},
		{
			name: "invalid email",
			in: RegisterInput{
				Username: "carol",
				Email:    "not-an-email",
				FullName: "Carol C",
				Password: "Password123",
				Avatar:   avatarFile(),
			},
			setup:    func(*MockRepository) {},
			wantErr:  true,
			wantKind: common.KindInvalidArgument,
		},
		{
			name: "missing avatar",
			in: RegisterInput{
				Username: "dave",
				Email:    "dave@example.com",
				FullName: "Dave D",
				Password: "Password123",
			},
			setup:    func(*MockRepository) {},
			wantErr:  true,
			wantKind: common.KindInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)
			tt.setup(repo)

			u, err := svc.Register(ctx, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, tt.wantKind, common.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, "alice", u.Username) // stored case-normalized
			require.NotEmpty(t, u.Avatar)
			require.NotEqual(t, "Password123", u.PasswordHash)
		})
	}
}

func TestUserService_Register_NormalizesEmail(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	// mixed-case address must collapse to one identity for dedup and storage
	repo.EXPECT().ByUsernameOrEmail(ctx, "erin", "erin@example.com").Return(nil, nil)
	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *dbmongo.User) error {
			u.ID = primitive.NewObjectID()
			return nil
		})

	u, err := svc.Register(ctx, RegisterInput{
		Username: "Erin",
		Email:    "Erin@Example.COM",
		FullName: "Erin E",
		Password: "Password123",
		Avatar:   avatarFile(),
	})
	require.NoError(t, err)
	require.Equal(t, "erin@example.com", u.Email)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := common.HashPassword("Password123")
	stored := &dbmongo.User{
		ID:           primitive.NewObjectID(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}

	t.Run("success issues and persists tokens", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().ByUsernameOrEmail(ctx, "alice", "alice").Return(stored, nil)
		repo.EXPECT().SetRefreshToken(ctx, stored.ID, gomock.Any()).Return(nil)

		u, pair, err := svc.Login(ctx, "Alice", "Password123")
		require.NoError(t, err)
		require.Equal(t, stored.ID, u.ID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().ByUsernameOrEmail(ctx, "alice", "alice").Return(stored, nil)

		_, _, err := svc.Login(ctx, "alice", "nope")
		require.Equal(t, common.KindUnauthenticated, common.KindOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().ByUsernameOrEmail(ctx, "ghost", "ghost").Return(nil, nil)

		_, _, err := svc.Login(ctx, "ghost", "whatever")
		require.Equal(t, common.KindUnauthenticated, common.KindOf(err))
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hash, _ := common.HashPassword("OldPass1")
	stored := &dbmongo.User{ID: primitive.NewObjectID(), Username: "alice", PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().ByID(ctx, stored.ID).Return(stored, nil)
		repo.EXPECT().UpdatePassword(ctx, stored.ID, gomock.Any()).Return(nil)

		require.NoError(t, svc.ChangePassword(ctx, stored.ID.Hex(), "OldPass1", "NewPass1"))
	})

	t.Run("wrong old password leaves state untouched", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().ByID(ctx, stored.ID).Return(stored, nil)

		err := svc.ChangePassword(ctx, stored.ID.Hex(), "wrong", "NewPass1")
		require.Equal(t, common.KindInvalidArgument, common.KindOf(err))
	})
}

func TestUserService_ChannelProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous caller", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().ChannelProfile(ctx, "alice", primitive.NilObjectID).
			Return(&ChannelProfileView{Username: "alice", SubscriberCount: 3}, nil)

		profile, err := svc.ChannelProfile(ctx, " Alice ", "")
		require.NoError(t, err)
		require.Equal(t, int64(3), profile.SubscriberCount)
		require.False(t, profile.IsSubscribed)
	})

	t.Run("unknown channel", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().ChannelProfile(ctx, "ghost", primitive.NilObjectID).Return(nil, nil)

		_, err := svc.ChannelProfile(ctx, "ghost", "")
		require.Equal(t, common.KindNotFound, common.KindOf(err))
	})
}

func TestUserService_UpdateAvatarDeletesOld(t *testing.T) {
	ctx := context.Background()
	stored := &dbmongo.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Avatar:   "http://assets/vidtube-media/old-avatar.png",
	}

	svc, repo, assets := newTestService(t)
	repo.EXPECT().ByID(ctx, stored.ID).Return(stored, nil).Times(2)
	repo.EXPECT().UpdateAvatar(ctx, stored.ID, gomock.Any()).Return(nil)

	_, err := svc.UpdateAvatar(ctx, stored.ID.Hex(), *avatarFile())
	require.NoError(t, err)
	require.Equal(t, []string{"http://assets/vidtube-media/old-avatar.png"}, assets.deleted)
}

func TestUserService_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	tokens := common.NewTokenManager("access", "refresh", time.Hour, 24*time.Hour)

	stored := &dbmongo.User{ID: primitive.NewObjectID(), Username: "alice"}
	refresh, err := tokens.GenerateRefreshToken(stored.ID.Hex())
	require.NoError(t, err)
	stored.RefreshToken = common.HashToken(refresh)

	t.Run("rotates the pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := NewMockRepository(ctrl)
		svc := NewService(repo, &stubAssetStore{}, tokens, logging.NewTestLogger())

		repo.EXPECT().ByID(ctx, stored.ID).Return(stored, nil)
		repo.EXPECT().SetRefreshToken(ctx, stored.ID, gomock.Any()).Return(nil)

		pair, err := svc.RefreshTokens(ctx, refresh)
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEqual(t, refresh, pair.RefreshToken)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := NewMockRepository(ctrl)
		svc := NewService(repo, &stubAssetStore{}, tokens, logging.NewTestLogger())

		revoked := *stored
		revoked.RefreshToken = ""
		repo.EXPECT().ByID(ctx, stored.ID).Return(&revoked, nil)

		_, err := svc.RefreshTokens(ctx, refresh)
		require.Equal(t, common.KindUnauthenticated, common.KindOf(err))
	})
}
