package usecase

import (
	"context"
	"errors"

	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"
	"tvet-connect-backend/pkg/validation"
)

var validate = validation.New()

// viewerFromContext reads the caller set by the auth middleware. No caller is an anonymous viewer.
func viewerFromContext(ctx context.Context) domain.Viewer {
	id, _ := ctx.Value(domain.KeyUserID).(string)
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	return domain.Viewer{ID: id, Role: domain.Role(role)}
}

func requireUser(ctx context.Context) (domain.Viewer, error) {
	viewer := viewerFromContext(ctx)
	if viewer.IsAnonymous() {
		return viewer, apperror.Unauthorized("Authentication required")
	}
	return viewer, nil
}

func requireTVET(ctx context.Context) (domain.Viewer, error) {
	viewer, err := requireUser(ctx)
	if err != nil {
		return viewer, err
	}
	if viewer.Role != domain.RoleTVET {
		return viewer, apperror.Forbidden("TVET administrator access required")
	}
	return viewer, nil
}

func validationError(err error) error {
	return apperror.BadRequest(validation.Message(err)).WithDetails(validation.FormatValidationErrors(err))
}

func internalError(action string, err error) error {
	return apperror.Internal(errors.New("Failed to " + action + ": " + err.Error()))
}
