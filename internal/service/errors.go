package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpay/internal/dispatch"
	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/session"
	"github.com/mmynk/splitpay/internal/storage"
)

// toConnectError maps domain errors to Connect codes. Anything unrecognised
// is Internal.
func toConnectError(err error) error {
	var validationErr *models.ValidationError
	var wrongCount *dispatch.WrongCountError

	switch {
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &wrongCount):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, dispatch.ErrNotValidated):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, dispatch.ErrDispatchInFlight):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, dispatch.ErrUnknownChannel):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, errContactNotFound),
		errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
