package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MapToGRPCError translates store errors into gRPC statuses.
func MapToGRPCError(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, ErrMessageNotFound), stderrors.Is(err, ErrAttachmentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case stderrors.Is(err, ErrTooManyAttachments), stderrors.Is(err, ErrAttachmentTooLarge):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// FromGRPCError turns a NotFound status back into the store error it was
// built from, told apart by the sentinel text MapToGRPCError keeps in the
// status message. Other statuses are returned as they are.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.NotFound {
		return err
	}
	if strings.HasPrefix(st.Message(), ErrAttachmentNotFound.Error()) {
		return fmt.Errorf("%w: %s", ErrAttachmentNotFound, strings.TrimPrefix(st.Message(), ErrAttachmentNotFound.Error()+": "))
	}
	return fmt.Errorf("%w: %s", ErrMessageNotFound, strings.TrimPrefix(st.Message(), ErrMessageNotFound.Error()+": "))
}
