package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/common"
	"vidtube/internal/user"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, common.E(common.KindInvalidArgument, "expected multipart form data"))
		return
	}

	avatar, err := formFile(r, "avatar")
	if err != nil {
		writeError(w, err)
		return
	}
	cover, err := formFile(r, "coverImage")
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.users.Register(r.Context(), user.RegisterInput{
		Username:   r.FormValue("username"),
		Email:      r.FormValue("email"),
		FullName:   r.FormValue("fullName"),
		Password:   r.FormValue("password"),
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "user registered successfully", created)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	identifier := body.Username
	if identifier == "" {
		identifier = body.Email
	}

	loggedIn, tokens, err := h.users.Login(r.Context(), identifier, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "logged in successfully", map[string]interface{}{
		"user":   loggedIn,
		"tokens": tokens,
	})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context(), CallerID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "logged out successfully", nil)
}

func (h *UserHandler) RefreshTokens(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	tokens, err := h.users.RefreshTokens(r.Context(), body.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "tokens refreshed", tokens)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := h.users.ChangePassword(r.Context(), CallerID(r.Context()), body.OldPassword, body.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "password changed successfully", nil)
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	current, err := h.users.CurrentUser(r.Context(), CallerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "current user fetched", current)
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.users.UpdateAccount(r.Context(), CallerID(r.Context()), body.FullName, body.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "account updated successfully", updated)
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar")
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage")
}

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, common.E(common.KindInvalidArgument, "expected multipart form data"))
		return
	}

	file, err := formFile(r, field)
	if err != nil {
		writeError(w, err)
		return
	}
	if file == nil {
		writeError(w, common.Ef(common.KindInvalidArgument, "%s file is required", field))
		return
	}

	var updated interface{}
	if field == "avatar" {
		updated, err = h.users.UpdateAvatar(r.Context(), CallerID(r.Context()), *file)
	} else {
		updated, err = h.users.UpdateCoverImage(r.Context(), CallerID(r.Context()), *file)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, field+" updated successfully", updated)
}

func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profile, err := h.users.ChannelProfile(r.Context(), username, CallerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "channel profile fetched", profile)
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.users.WatchHistory(r.Context(), CallerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "watch history fetched", history)
}
