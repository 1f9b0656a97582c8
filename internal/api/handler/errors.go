package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mcoot/cwlroster/internal/api/apierr"
)

// maxBodyBytes caps request bodies; a roster message is a few KB at most
const maxBodyBytes = 1 << 20

// WriteError writes err as the JSON error envelope, mapping domain errors
// to their API codes
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// writeInvalid rejects the request with an invalid_request error
func writeInvalid(w http.ResponseWriter, format string, args ...any) {
	WriteError(w, apierr.NewInvalidRequestError(fmt.Sprintf(format, args...)))
}

// decode reads a JSON request body into dst, writing an error response on failure
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeInvalid(w, "invalid request body")
		return false
	}
	return true
}
