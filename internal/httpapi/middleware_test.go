package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vidtube/internal/common"
)

func testTokens() *common.TokenManager {
	return common.NewTokenManager("access", "refresh", time.Hour, 24*time.Hour)
}

func TestAuthMiddleware_Require(t *testing.T) {
	tokens := testTokens()
	auth := &authMiddleware{tokens: tokens}

	handler := auth.Require(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "ok", map[string]string{"caller": CallerID(r.Context())})
	})

	t.Run("missing token rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body envelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.False(t, body.Success)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")

		rec := httptest.NewRecorder()
		handler(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes caller through", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken("abc123", "alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var body envelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.True(t, body.Success)
		require.Equal(t, "abc123", body.Data.(map[string]interface{})["caller"])
	})
}

func TestAuthMiddleware_Optional(t *testing.T) {
	tokens := testTokens()
	auth := &authMiddleware{tokens: tokens}

	handler := auth.Optional(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "ok", map[string]string{"caller": CallerID(r.Context())})
	})

	t.Run("anonymous request passes with empty caller", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/public", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body envelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "", body.Data.(map[string]interface{})["caller"])
	})

	t.Run("valid token attaches caller", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken("abc123", "alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler(rec, req)

		var body envelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "abc123", body.Data.(map[string]interface{})["caller"])
	})
}

func TestWriteError_KindMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid argument", common.E(common.KindInvalidArgument, "bad input"), http.StatusBadRequest, "bad input"},
		{"unauthenticated", common.E(common.KindUnauthenticated, "who are you"), http.StatusUnauthorized, "who are you"},
		{"permission denied", common.E(common.KindPermissionDenied, "not yours"), http.StatusForbidden, "not yours"},
		{"not found", common.E(common.KindNotFound, "gone"), http.StatusNotFound, "gone"},
		{"conflict", common.E(common.KindConflict, "exists"), http.StatusConflict, "exists"},
		{"unclassified hides detail", assertableError("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)

			var body envelope
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.False(t, body.Success)
			require.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
