package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/common"
	"vidtube/internal/logging"
)

// Handlers bundles the per-domain handlers the router mounts.
type Handlers struct {
	User         *UserHandler
	Video        *VideoHandler
	Comment      *CommentHandler
	Tweet        *TweetHandler
	Like         *LikeHandler
	Subscription *SubscriptionHandler
	Playlist     *PlaylistHandler
	Dashboard    *DashboardHandler
}

// NewRouter mounts the API under /api/v1. Mutating routes require a valid
// access token; public views take an optional one so caller-dependent
// fields resolve when present.
func NewRouter(h Handlers, tokens *common.TokenManager, log *logging.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger(log))

	auth := &authMiddleware{tokens: tokens}

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "service is healthy", nil)
	}).Methods(http.MethodGet)

	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", h.User.Register).Methods(http.MethodPost)
	users.HandleFunc("/login", h.User.Login).Methods(http.MethodPost)
	users.HandleFunc("/logout", auth.Require(h.User.Logout)).Methods(http.MethodPost)
	users.HandleFunc("/refresh-token", h.User.RefreshTokens).Methods(http.MethodPost)
	users.HandleFunc("/change-password", auth.Require(h.User.ChangePassword)).Methods(http.MethodPost)
	users.HandleFunc("/current-user", auth.Require(h.User.CurrentUser)).Methods(http.MethodGet)
	users.HandleFunc("/update-account", auth.Require(h.User.UpdateAccount)).Methods(http.MethodPatch)
	users.HandleFunc("/avatar", auth.Require(h.User.UpdateAvatar)).Methods(http.MethodPatch)
	users.HandleFunc("/cover-image", auth.Require(h.User.UpdateCoverImage)).Methods(http.MethodPatch)
	users.HandleFunc("/c/{username}", auth.Optional(h.User.ChannelProfile)).Methods(http.MethodGet)
	users.HandleFunc("/history", auth.Require(h.User.WatchHistory)).Methods(http.MethodGet)

	videos := api.PathPrefix("/videos").Subrouter()
	videos.HandleFunc("", h.Video.Search).Methods(http.MethodGet)
	videos.HandleFunc("", auth.Require(h.Video.Publish)).Methods(http.MethodPost)
	videos.HandleFunc("/{videoId}", auth.Optional(h.Video.Watch)).Methods(http.MethodGet)
	videos.HandleFunc("/{videoId}", auth.Require(h.Video.Update)).Methods(http.MethodPatch)
	videos.HandleFunc("/{videoId}", auth.Require(h.Video.Delete)).Methods(http.MethodDelete)
	videos.HandleFunc("/toggle/publish/{videoId}", auth.Require(h.Video.TogglePublish)).Methods(http.MethodPatch)

	comments := api.PathPrefix("/comments").Subrouter()
	comments.HandleFunc("/{videoId}", h.Comment.ListForVideo).Methods(http.MethodGet)
	comments.HandleFunc("/{videoId}", auth.Require(h.Comment.Add)).Methods(http.MethodPost)
	comments.HandleFunc("/c/{commentId}", auth.Require(h.Comment.Update)).Methods(http.MethodPatch)
	comments.HandleFunc("/c/{commentId}", auth.Require(h.Comment.Delete)).Methods(http.MethodDelete)

	tweets := api.PathPrefix("/tweets").Subrouter()
	tweets.HandleFunc("", auth.Require(h.Tweet.Create)).Methods(http.MethodPost)
	tweets.HandleFunc("/user/{userId}", h.Tweet.ListForUser).Methods(http.MethodGet)
	tweets.HandleFunc("/{tweetId}", auth.Require(h.Tweet.Update)).Methods(http.MethodPatch)
	tweets.HandleFunc("/{tweetId}", auth.Require(h.Tweet.Delete)).Methods(http.MethodDelete)

	likes := api.PathPrefix("/likes").Subrouter()
	likes.HandleFunc("/toggle/v/{videoId}", auth.Require(h.Like.ToggleVideoLike)).Methods(http.MethodPost)
	likes.HandleFunc("/toggle/c/{commentId}", auth.Require(h.Like.ToggleCommentLike)).Methods(http.MethodPost)
	likes.HandleFunc("/toggle/t/{tweetId}", auth.Require(h.Like.ToggleTweetLike)).Methods(http.MethodPost)
	likes.HandleFunc("/videos", auth.Require(h.Like.LikedVideos)).Methods(http.MethodGet)

	subscriptions := api.PathPrefix("/subscriptions").Subrouter()
	subscriptions.HandleFunc("/c/{channelId}", auth.Require(h.Subscription.Toggle)).Methods(http.MethodPost)
	subscriptions.HandleFunc("/c/{channelId}", h.Subscription.ChannelSubscribers).Methods(http.MethodGet)
	subscriptions.HandleFunc("/u/{subscriberId}", h.Subscription.SubscribedChannels).Methods(http.MethodGet)

	playlists := api.PathPrefix("/playlist").Subrouter()
	playlists.HandleFunc("", auth.Require(h.Playlist.Create)).Methods(http.MethodPost)
	playlists.HandleFunc("/user/{userId}", h.Playlist.ByUser).Methods(http.MethodGet)
	playlists.HandleFunc("/{playlistId}", h.Playlist.Detail).Methods(http.MethodGet)
	playlists.HandleFunc("/{playlistId}", auth.Require(h.Playlist.Update)).Methods(http.MethodPatch)
	playlists.HandleFunc("/{playlistId}", auth.Require(h.Playlist.Delete)).Methods(http.MethodDelete)
	playlists.HandleFunc("/add/{videoId}/{playlistId}", auth.Require(h.Playlist.AddVideo)).Methods(http.MethodPatch)
	playlists.HandleFunc("/remove/{videoId}/{playlistId}", auth.Require(h.Playlist.RemoveVideo)).Methods(http.MethodPatch)

	dashboards := api.PathPrefix("/dashboard").Subrouter()
	dashboards.HandleFunc("/stats", auth.Require(h.Dashboard.Stats)).Methods(http.MethodGet)
	dashboards.HandleFunc("/videos", auth.Require(h.Dashboard.ChannelVideos)).Methods(http.MethodGet)

	return router
}
