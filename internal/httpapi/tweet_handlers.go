package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/tweet"
)

type TweetHandler struct {
	tweets tweet.Service
}

func NewTweetHandler(tweets tweet.Service) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.tweets.Create(r.Context(), CallerID(r.Context()), body.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "tweet created successfully", created)
}

func (h *TweetHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	views, err := h.tweets.ListForOwner(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "tweets fetched", views)
}

func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.tweets.Update(r.Context(), CallerID(r.Context()), mux.Vars(r)["tweetId"], body.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "tweet updated successfully", updated)
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.tweets.Delete(r.Context(), CallerID(r.Context()), mux.Vars(r)["tweetId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "tweet deleted successfully", deleted)
}
