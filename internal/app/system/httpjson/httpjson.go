// Package httpjson writes JSON responses and maps the apperr taxonomy to
// HTTP status codes.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
)

// MaxBodyBytes bounds request bodies accepted by Read.
const MaxBodyBytes = 1 << 20

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error  string              `json:"error"`
	Fields []apperr.FieldError `json:"fields,omitempty"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Read decodes a JSON body into dst, rejecting unknown fields and trailing
// data. Decode failures come back as a validation error on "body".
func Read(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("body", "request body is empty")
		}
		return apperr.Invalid("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	if dec.More() {
		return apperr.Invalid("body", "unexpected data after JSON object")
	}
	return nil
}

// Error writes a plain message with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorBody{Error: msg})
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrCollaborator):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// WriteError maps err to a status and writes its body. Internal errors are
// not echoed to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := ErrorBody{Error: err.Error(), Fields: apperr.Fields(err)}
	switch status {
	case http.StatusInternalServerError:
		body.Error = "internal error"
	case http.StatusBadGateway:
		body.Error = "upstream service unavailable, try again"
	case http.StatusNotFound:
		body.Error = apperr.ErrNotFound.Error()
	}
	Write(w, status, body)
}
