package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/playlist"
)

type PlaylistHandler struct {
	playlists playlist.Service
}

func NewPlaylistHandler(playlists playlist.Service) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.playlists.Create(r.Context(), CallerID(r.Context()), body.Name, body.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "playlist created successfully", created)
}

func (h *PlaylistHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	views, err := h.playlists.ByOwner(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "playlists fetched", views)
}

func (h *PlaylistHandler) Detail(w http.ResponseWriter, r *http.Request) {
	view, err := h.playlists.Detail(r.Context(), mux.Vars(r)["playlistId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "playlist fetched", view)
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.playlists.Update(r.Context(), CallerID(r.Context()), mux.Vars(r)["playlistId"], body.Name, body.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "playlist updated successfully", updated)
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	updated, err := h.playlists.AddVideo(r.Context(), CallerID(r.Context()), vars["playlistId"], vars["videoId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "video added to playlist", updated)
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	updated, err := h.playlists.RemoveVideo(r.Context(), CallerID(r.Context()), vars["playlistId"], vars["videoId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "video removed from playlist", updated)
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.playlists.Delete(r.Context(), CallerID(r.Context()), mux.Vars(r)["playlistId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "playlist deleted successfully", deleted)
}
