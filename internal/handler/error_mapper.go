package handler

import (
	"errors"

	"github.com/forgo/directory/api/internal/dao"
	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// MapStoreError converts a data access error to a ProblemDetails response.
// This centralizes error handling for all handlers so HTTP status codes stay
// consistent across the API. resource names the record kind for 404 messages.
func MapStoreError(err error, resource string) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var verr *dao.ValidationError
	switch {
	case errors.As(err, &verr):
		return model.NewValidationError(verr.Errors)
	case errors.Is(err, dao.ErrMissingID):
		return model.NewBadRequestError(err.Error())
	case errors.Is(err, database.ErrNotFound):
		return model.NewNotFoundError(resource)
	case errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError(err.Error())
	default:
		return model.NewInternalError("")
	}
}
