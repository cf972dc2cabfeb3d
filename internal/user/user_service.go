package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/asset"
	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/logging"
)

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *asset.File
	CoverImage *asset.File
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*dbmongo.User, error)
	Login(ctx context.Context, identifier, password string) (*dbmongo.User, *TokenPair, error)
	Logout(ctx context.Context, actorID string) error
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, actorID, oldPassword, newPassword string) error
	CurrentUser(ctx context.Context, actorID string) (*dbmongo.User, error)
	UpdateAccount(ctx context.Context, actorID, fullName, email string) (*dbmongo.User, error)
	UpdateAvatar(ctx context.Context, actorID string, file asset.File) (*dbmongo.User, error)
	UpdateCoverImage(ctx context.Context, actorID string, file asset.File) (*dbmongo.User, error)
	ChannelProfile(ctx context.Context, username, callerID string) (*ChannelProfileView, error)
	WatchHistory(ctx context.Context, actorID string) ([]dbmongo.VideoWithOwner, error)
}

type userService struct {
	userRepo Repository
	assets   asset.Store
	tokens   *common.TokenManager
	log      *logging.Logger
}

func NewService(userRepo Repository, assets asset.Store, tokens *common.TokenManager, log *logging.Logger) Service {
	return &userService{userRepo: userRepo, assets: assets, tokens: tokens, log: log}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*dbmongo.User, error) {
	username := common.NormalizeUsername(in.Username)
	email := common.NormalizeEmail(in.Email)
	if err := common.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.FullName == "" {
		return nil, common.E(common.KindInvalidArgument, "fullName is required")
	}
	if in.Avatar == nil {
		return nil, common.E(common.KindInvalidArgument, "avatar is required")
	}

	existing, err := s.userRepo.ByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while registering user", err)
	}
	if existing != nil {
		return nil, common.E(common.KindConflict, "user with email or username already exists")
	}

	avatarURL, err := s.assets.Upload(ctx, in.Avatar.Name, in.Avatar.ContentType, in.Avatar.Content, in.Avatar.Size)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while uploading avatar", err)
	}

	var coverURL string
	if in.CoverImage != nil {
		coverURL, err = s.assets.Upload(ctx, in.CoverImage.Name, in.CoverImage.ContentType, in.CoverImage.Content, in.CoverImage.Size)
		if err != nil {
			return nil, common.Wrap(common.KindInternal, "error while uploading cover image", err)
		}
	}

	hashed, err := common.HashPassword(in.Password)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while registering user", err)
	}

	user := &dbmongo.User{
		Username:     username,
		Email:        email,
		FullName:     in.FullName,
		Avatar:       avatarURL,
		CoverImage:   coverURL,
		PasswordHash: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// the unique index still catches a concurrent duplicate
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.Wrap(common.KindConflict, "user with email or username already exists", err)
		}
		return nil, common.Wrap(common.KindInternal, "error while registering user", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, identifier, password string) (*dbmongo.User, *TokenPair, error) {
	if identifier == "" || password == "" {
		return nil, nil, common.E(common.KindInvalidArgument, "username and password required")
	}

	identifier = common.NormalizeUsername(identifier)
	user, err := s.userRepo.ByUsernameOrEmail(ctx, identifier, identifier)
	if err != nil {
		return nil, nil, common.Wrap(common.KindInternal, "error while logging in", err)
	}
	if user == nil {
		return nil, nil, common.E(common.KindUnauthenticated, "invalid credentials")
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, nil, common.E(common.KindUnauthenticated, "invalid credentials")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *userService) Logout(ctx context.Context, actorID string) error {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	if err := s.userRepo.SetRefreshToken(ctx, actor, ""); err != nil {
		return common.Wrap(common.KindInternal, "error while logging out", err)
	}
	return nil
}

// RefreshTokens rotates the token pair: the presented refresh token must
// match the hash stored on the user, and the new pair replaces it.
func (s *userService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidRefreshToken(refreshToken)
	if err != nil {
		return nil, common.E(common.KindUnauthenticated, "invalid refresh token")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, common.E(common.KindUnauthenticated, "invalid refresh token")
	}

	user, err := s.userRepo.ByID(ctx, id)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while refreshing tokens", err)
	}
	if user == nil || user.RefreshToken != common.HashToken(refreshToken) {
		return nil, common.E(common.KindUnauthenticated, "refresh token is expired or revoked")
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) issueTokens(ctx context.Context, user *dbmongo.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID.Hex(), user.Username)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while generating tokens", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while generating tokens", err)
	}
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, common.HashToken(refresh)); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while generating tokens", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) ChangePassword(ctx context.Context, actorID, oldPassword, newPassword string) error {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	if err := common.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.ByID(ctx, actor)
	if err != nil {
		return common.Wrap(common.KindInternal, "error while changing password", err)
	}
	if user == nil {
		return common.E(common.KindNotFound, "user not found")
	}

	if err := common.CheckPassword(oldPassword, user.PasswordHash); err != nil {
		return common.E(common.KindInvalidArgument, "old password is incorrect")
	}

	hashed, err := common.HashPassword(newPassword)
	if err != nil {
		return common.Wrap(common.KindInternal, "error while changing password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, actor, hashed); err != nil {
		return common.Wrap(common.KindInternal, "error while changing password", err)
	}
	return nil
}

func (s *userService) CurrentUser(ctx context.Context, actorID string) (*dbmongo.User, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	user, err := s.userRepo.ByID(ctx, actor)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching user", err)
	}
	if user == nil {
		return nil, common.E(common.KindNotFound, "user not found")
	}
	return user, nil
}

func (s *userService) UpdateAccount(ctx context.Context, actorID, fullName, email string) (*dbmongo.User, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}
	if fullName == "" && email == "" {
		return nil, common.E(common.KindInvalidArgument, "atleast one field is required")
	}
	if email != "" {
		email = common.NormalizeEmail(email)
		if err := common.ValidateEmail(email); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateAccount(ctx, actor, fullName, email); err != nil {
		return nil, common.Wrap(common.KindInternal, "error while updating account", err)
	}
	return s.CurrentUser(ctx, actorID)
}

func (s *userService) UpdateAvatar(ctx context.Context, actorID string, file asset.File) (*dbmongo.User, error) {
	return s.updateImage(ctx, actorID, file, false)
}

func (s *userService) UpdateCoverImage(ctx context.Context, actorID string, file asset.File) (*dbmongo.User, error) {
	return s.updateImage(ctx, actorID, file, true)
}

func (s *userService) updateImage(ctx context.Context, actorID string, file asset.File, cover bool) (*dbmongo.User, error) {
	user, err := s.CurrentUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	url, err := s.assets.Upload(ctx, file.Name, file.ContentType, file.Content, file.Size)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while uploading image", err)
	}

	old := user.Avatar
	if cover {
		old = user.CoverImage
		err = s.userRepo.UpdateCoverImage(ctx, user.ID, url)
	} else {
		err = s.userRepo.UpdateAvatar(ctx, user.ID, url)
	}
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while updating image", err)
	}

	if old != "" {
		if delErr := s.assets.Delete(ctx, old, false); delErr != nil {
			s.log.ErrorWithErr("failed to delete replaced image asset", delErr)
		}
	}

	return s.CurrentUser(ctx, actorID)
}

// ChannelProfile resolves the channel page by case-normalized username.
// callerID may be empty for anonymous callers; isSubscribed is then false.
func (s *userService) ChannelProfile(ctx context.Context, username, callerID string) (*ChannelProfileView, error) {
	username = common.NormalizeUsername(username)
	if username == "" {
		return nil, common.E(common.KindInvalidArgument, "username is required")
	}

	var caller primitive.ObjectID
	if callerID != "" {
		var err error
		caller, err = primitive.ObjectIDFromHex(callerID)
		if err != nil {
			return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
		}
	}

	profile, err := s.userRepo.ChannelProfile(ctx, username, caller)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching channel profile", err)
	}
	if profile == nil {
		return nil, common.E(common.KindNotFound, "channel does not exist")
	}
	return profile, nil
}

func (s *userService) WatchHistory(ctx context.Context, actorID string) ([]dbmongo.VideoWithOwner, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, common.E(common.KindInvalidArgument, "invalid actor ID")
	}

	history, err := s.userRepo.WatchHistory(ctx, actor)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "error while fetching watch history", err)
	}
	if history == nil {
		history = []dbmongo.VideoWithOwner{}
	}
	return history, nil
}
