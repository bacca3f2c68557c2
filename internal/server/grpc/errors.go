package grpcserver

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/and161185/keyvault/internal/errs"
)

// toStatus maps domain errors to gRPC codes. Messages of classified errors are safe
// to return; anything else becomes a bare Internal.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	var code codes.Code
	switch {
	case errors.Is(err, errs.ErrRateLimited):
		code = codes.ResourceExhausted
	case errors.Is(err, errs.ErrBusy), errors.Is(err, errs.ErrUnlockInProgress):
		code = codes.Unavailable
	case errors.Is(err, errs.ErrNotFound):
		code = codes.NotFound
	default:
		switch errs.KindOf(err) {
		case errs.KindValidation:
			code = codes.InvalidArgument
		case errs.KindAuthentication:
			code = codes.Unauthenticated
		case errs.KindIntegrity, errs.KindState:
			code = codes.FailedPrecondition
		default:
			return status.Error(codes.Internal, "internal")
		}
	}
	return status.Error(code, err.Error())
}
