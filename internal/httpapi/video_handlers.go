package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"vidtube/internal/common"
	"vidtube/internal/video"
)

type VideoHandler struct {
	videos video.Service
}

func NewVideoHandler(videos video.Service) *VideoHandler {
	return &VideoHandler{videos: videos}
}

func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, common.E(common.KindInvalidArgument, "expected multipart form data"))
		return
	}

	media, err := formFile(r, "videoFile")
	if err != nil {
		writeError(w, err)
		return
	}
	thumbnail, err := formFile(r, "thumbnail")
	if err != nil {
		writeError(w, err)
		return
	}

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	published, err := h.videos.Publish(r.Context(), CallerID(r.Context()), video.PublishInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Duration:    duration,
		Media:       media,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "video published successfully", published)
}

func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(r)

	result, err := h.videos.Search(r.Context(), video.SearchInput{
		Query:   q.Get("query"),
		OwnerID: q.Get("userId"),
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortType"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "videos fetched", result)
}

func (h *VideoHandler) Watch(w http.ResponseWriter, r *http.Request) {
	view, err := h.videos.Watch(r.Context(), mux.Vars(r)["videoId"], CallerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "video fetched", view)
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, common.E(common.KindInvalidArgument, "expected multipart form data"))
		return
	}

	thumbnail, err := formFile(r, "thumbnail")
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.videos.Update(r.Context(), CallerID(r.Context()), mux.Vars(r)["videoId"],
		video.UpdatePatch{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
		}, thumbnail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "video updated successfully", updated)
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	updated, err := h.videos.TogglePublish(r.Context(), CallerID(r.Context()), mux.Vars(r)["videoId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "publish status toggled", updated)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.videos.Delete(r.Context(), CallerID(r.Context()), mux.Vars(r)["videoId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "video deleted successfully", deleted)
}
