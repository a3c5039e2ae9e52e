// Package respond writes JSON responses and maps errors from the
// apperror taxonomy to HTTP statuses at the transport boundary.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/camrado/pritok/internal/apperror"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error *apperror.Error `json:"error"`
}

// Error renders err as its taxonomy code and message. Anything outside
// the taxonomy is logged and reported as an opaque storage failure so
// internals never leak to the client.
func Error(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		slog.Error("unexpected internal error", "error", err)
		appErr = apperror.StorageFailure("something went wrong")
	}

	JSON(w, apperror.Status(appErr.Code), errorBody{Error: appErr})
}
