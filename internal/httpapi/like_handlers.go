package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/dbmongo"
	"vidtube/internal/like"
)

type LikeHandler struct {
	likes like.Service
}

func NewLikeHandler(likes like.Service) *LikeHandler {
	return &LikeHandler{likes: likes}
}

func (h *LikeHandler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, dbmongo.TargetVideo, mux.Vars(r)["videoId"])
}

func (h *LikeHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, dbmongo.TargetComment, mux.Vars(r)["commentId"])
}

func (h *LikeHandler) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, dbmongo.TargetTweet, mux.Vars(r)["tweetId"])
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, kind dbmongo.TargetKind, targetID string) {
	liked, err := h.likes.ToggleLike(r.Context(), CallerID(r.Context()), kind, targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	message := "unliked successfully"
	if liked {
		message = "liked successfully"
	}
	writeJSON(w, http.StatusOK, message, map[string]bool{"liked": liked})
}

func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	views, err := h.likes.LikedVideos(r.Context(), CallerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "liked videos fetched", views)
}
