package auth

import (
	"sarvasva/internal/qerrors"
)

var (
	GuestNotFoundError = qerrors.NewValidationError("guest identity missing from request")
)
