package handling

import (
	"errors"
	"net/http"
	"promo_store_server/lib"

	"github.com/MonkyMars/gecho"
)

// Messages shared by every handler. Gated routes must all answer with the
// same unauthorized message.
const (
	MsgUnauthorized       = "Unauthorized"
	MsgInvalidCredentials = "Invalid username or password"
	MsgValidationFailed   = "Validation failed"
	MsgEmptyCart          = "Cart is empty"
	MsgCartChanged        = "Your cart changed during checkout, please review it and try again"
	MsgInternal           = "Internal server error"
)

// HandleError writes the response for err. Known failures map to client
// errors; anything else is logged and answered with a 500. notFoundMsg is
// used for lib.ErrNotFound.
func HandleError(err error, notFoundMsg string, logger *gecho.Logger, w http.ResponseWriter) error {
	var validationErr *lib.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return gecho.BadRequest(w,
			gecho.WithMessage(MsgValidationFailed),
			gecho.WithData(validationErr.Errors),
		).Send()
	case errors.Is(err, lib.ErrValidation):
		return gecho.BadRequest(w, gecho.WithMessage(err.Error())).Send()
	case errors.Is(err, lib.ErrEmptyCart):
		return gecho.BadRequest(w, gecho.WithMessage(MsgEmptyCart)).Send()
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w, gecho.WithMessage(notFoundMsg)).Send()
	case errors.Is(err, lib.ErrInvalidCredentials):
		return gecho.Unauthorized(w, gecho.WithMessage(MsgInvalidCredentials)).Send()
	case errors.Is(err, lib.ErrUnauthorized),
		errors.Is(err, lib.ErrInvalidToken),
		errors.Is(err, lib.ErrExpiredToken):
		return gecho.Unauthorized(w, gecho.WithMessage(MsgUnauthorized)).Send()
	case errors.Is(err, lib.ErrCartChanged):
		return gecho.Conflict(w, gecho.WithMessage(MsgCartChanged)).Send()
	case errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w, gecho.WithMessage("Resource already exists")).Send()
	}

	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", notFoundMsg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.WithMessage(MsgInternal)).Send()
}
