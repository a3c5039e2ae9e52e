package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/query"
)

// decodeJSON decodes a request body into dst. Unknown keys are rejected
// up front so a patch never half-applies.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err != nil {
		return apperror.InvalidFields("request body is not valid")
	}

	return nil
}

// parseQueryParams reads the optional search, skip and limit parameters
// of a list request.
func parseQueryParams(r *http.Request) (query.Params, error) {
	params := query.Params{
		Search: r.URL.Query().Get("search"),
	}

	skip, err := parseOptionalCount(r, "skip")
	if err != nil {
		return query.Params{}, err
	}
	params.Skip = skip

	limit, err := parseOptionalCount(r, "limit")
	if err != nil {
		return query.Params{}, err
	}
	params.Limit = limit

	return params, nil
}

// parseOptionalCount reads a non-negative integer query parameter,
// returning nil when it is absent.
func parseOptionalCount(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, apperror.InvalidFields(name + " must be a non-negative integer")
	}

	return &n, nil
}

// parsePageLimit reads the mandatory positive limit of a page-count
// request.
func parsePageLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, apperror.InvalidFields("limit is required")
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperror.InvalidFields("limit must be a positive integer")
	}

	return n, nil
}
