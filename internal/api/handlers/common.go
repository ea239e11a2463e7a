package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/icplearn/backend/internal/domain"
)

// ErrorBody is the JSON shape of a failed call.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Result is the envelope every endpoint responds with. Exactly one of Ok
// and Error is set.
type Result struct {
	Ok    any        `json:"ok,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// statusFor maps a domain error kind to an HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindInvalidPayload:
		return http.StatusBadRequest
	case domain.KindInvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeResult(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Result{Ok: data}); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	if kind == "" {
		kind = "Internal"
	}

	if status >= 500 {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		slog.Warn("request rejected", "method", r.Method, "path", r.URL.Path,
			"kind", string(kind), "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := Result{Error: &ErrorBody{Kind: string(kind), Message: err.Error()}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode error response", "error", err)
	}
}

// decode parses the request body into dst. A malformed body is an
// InvalidPayload error, matching what the services return for bad fields.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.InvalidPayloadf("invalid request body")
	}
	return nil
}

// pageParams reads skip and limit from the query string. Absent or
// malformed values fall back to zero; the store applies its defaults.
func pageParams(r *http.Request) (skip, limit uint64) {
	skip, _ = strconv.ParseUint(r.URL.Query().Get("skip"), 10, 64)
	limit, _ = strconv.ParseUint(r.URL.Query().Get("limit"), 10, 64)
	return skip, limit
}
