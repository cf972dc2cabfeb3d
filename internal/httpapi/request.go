package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vidtube/internal/asset"
	"vidtube/internal/common"
)

// uploads above this size spill to disk instead of memory
const maxMultipartMemory = 32 << 20

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.E(common.KindInvalidArgument, "invalid request body")
	}
	return nil
}

// formFile pulls one uploaded file out of a parsed multipart form.
// Returns nil without error when the field is absent so optional uploads
// fall through cleanly.
func formFile(r *http.Request, field string) (*asset.File, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, common.Ef(common.KindInvalidArgument, "invalid %s upload", field)
	}

	return &asset.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, nil
}

// pageParams reads page/limit from the query string. Anything unparsable
// comes back as zero and is clamped to the defaults downstream.
func pageParams(r *http.Request) (int64, int64) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	return page, limit
}
