package server

import (
	"context"

	"message-ledger/errors"
	pb "message-ledger/proto/ledger"
	"message-ledger/services"
)

type AuthServer struct {
	pb.UnimplementedAuthServiceServer
	authService services.IAuthService
}

// NewAuthServer creates the gRPC front of account registration and login.
func NewAuthServer(authService services.IAuthService) *AuthServer {
	return &AuthServer{authService: authService}
}

// Register creates an account, mints its identity and issues a first token.
func (s *AuthServer) Register(_ context.Context, in *pb.RegisterRequest) (*pb.AuthResponse, error) {
	session, err := s.authService.Register(in.Email, in.Password)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.AuthResponse{Token: session.Token, Identity: session.Identity.String()}, nil
}

// Login verifies credentials and returns a token proving the account identity.
func (s *AuthServer) Login(_ context.Context, in *pb.LoginRequest) (*pb.AuthResponse, error) {
	session, err := s.authService.Login(in.Email, in.Password)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.AuthResponse{Token: session.Token, Identity: session.Identity.String()}, nil
}
