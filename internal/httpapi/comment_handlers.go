package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/comment"
)

type CommentHandler struct {
	comments comment.Service
}

func NewCommentHandler(comments comment.Service) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) ListForVideo(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.comments.ListForVideo(r.Context(), mux.Vars(r)["videoId"], page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "comments fetched", result)
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	added, err := h.comments.Add(r.Context(), CallerID(r.Context()), mux.Vars(r)["videoId"], body.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "comment added successfully", added)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.comments.Update(r.Context(), CallerID(r.Context()), mux.Vars(r)["commentId"], body.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "comment updated successfully", updated)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.comments.Delete(r.Context(), CallerID(r.Context()), mux.Vars(r)["commentId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "comment deleted successfully", deleted)
}
