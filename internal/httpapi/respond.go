package httpapi

import (
	"encoding/json"
	"net/http"

	"vidtube/internal/common"
)

// envelope is the wire shape of every response.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		Success: status < 400,
		Message: message,
		Data:    data,
	})
}

func statusOf(kind common.Kind) int {
	switch kind {
	case common.KindInvalidArgument:
		return http.StatusBadRequest
	case common.KindUnauthenticated:
		return http.StatusUnauthorized
	case common.KindPermissionDenied:
		return http.StatusForbidden
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps the error's taxonomy kind to an HTTP status. Unclassified
// errors come out as a generic 500 so internals never reach the client.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(common.KindOf(err)), common.Message(err), nil)
}
