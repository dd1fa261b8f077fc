package utils

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))
		if validationErrs, ok := AsValidationErrors(err); ok {
			response.ValidationError(w, validationErrs)
			return false
		}
		response.Error(w, errors.BadRequestError("Invalid input data"))
		return false
	}

	return true

}

// ParseID reads a UUID path value.
func ParseID(r *http.Request, key string) (uuid.UUID, error) {

	raw := r.PathValue(key)
	if raw == "" {
		return uuid.Nil, errors.BadRequestError("Missing " + key)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.BadRequestError("Invalid " + key + " format").WithError(err)
	}

	return id, nil
}

// ParsePagination reads page/pageSize query parameters, falling back to 1 and 10.
func ParsePagination(r *http.Request) (int, int) {

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	return page, pageSize
}
