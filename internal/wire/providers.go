package wire

import (
	"github.com/gorilla/mux"

	"vidtube/internal/common"
	"vidtube/internal/config"
	"vidtube/internal/dbmongo"
	"vidtube/internal/logging"
)

// Application is the fully wired service: everything main needs to start
// serving and to shut down cleanly.
type Application struct {
	Config *config.Config
	Logger *logging.Logger
	Mongo  *dbmongo.MongoClient
	Router *mux.Router
}

func ProvideTokenManager(cfg *config.Config) *common.TokenManager {
	return common.NewTokenManager(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
}
