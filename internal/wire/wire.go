//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"vidtube/internal/asset"
	"vidtube/internal/comment"
	"vidtube/internal/config"
	"vidtube/internal/dashboard"
	"vidtube/internal/dbmongo"
	"vidtube/internal/httpapi"
	"vidtube/internal/like"
	"vidtube/internal/logging"
	"vidtube/internal/playlist"
	"vidtube/internal/subscription"
	"vidtube/internal/tweet"
	"vidtube/internal/user"
	"vidtube/internal/video"
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		config.Load,
		logging.NewLogger,
		dbmongo.NewMongoConnection,
		asset.NewStore,
		ProvideTokenManager,

		user.NewRepository,
		video.NewRepository,
		comment.NewRepository,
		tweet.NewRepository,
		like.NewRepository,
		subscription.NewRepository,
		playlist.NewRepository,
		dashboard.NewRepository,

		user.NewService,
		video.NewService,
		comment.NewService,
		tweet.NewService,
		like.NewService,
		subscription.NewService,
		playlist.NewService,
		dashboard.NewService,

		httpapi.NewUserHandler,
		httpapi.NewVideoHandler,
		httpapi.NewCommentHandler,
		httpapi.NewTweetHandler,
		httpapi.NewLikeHandler,
		httpapi.NewSubscriptionHandler,
		httpapi.NewPlaylistHandler,
		httpapi.NewDashboardHandler,
		wire.Struct(new(httpapi.Handlers), "*"),

		httpapi.NewRouter,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
