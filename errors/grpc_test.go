package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapToGRPCError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"authentication", ErrAuthenticationFailure, codes.Unauthenticated},
		{"wrapped authentication", fmt.Errorf("verify alice: %w", ErrAuthenticationFailure), codes.Unauthenticated},
		{"unauthorized", ErrUnauthorizedAccess, codes.PermissionDenied},
		{"forbidden mark read", ErrForbiddenMarkRead, codes.PermissionDenied},
		{"not found", ErrMessageNotFound, codes.NotFound},
		{"already exists", ErrUserAlreadyExists, codes.AlreadyExists},
		{"invalid command", fmt.Errorf("%w: sender is required", ErrInvalidCommand), codes.InvalidArgument},
		{"unknown", fmt.Errorf("disk on fire"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			st, ok := status.FromError(MapToGRPCError(tt.err))
			req.True(ok)
			req.Equal(tt.code, st.Code())
		})
	}
}

func TestMapToGRPCError_KeepsStatus(t *testing.T) {
	req := require.New(t)
	original := status.Error(codes.Unavailable, "try later")
	req.Equal(original, MapToGRPCError(original))
	req.NoError(MapToGRPCError(nil))
}
