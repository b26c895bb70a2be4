package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"message-ledger/auth"
	"message-ledger/domain"
	pb "message-ledger/proto/ledger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Methods reachable without a bearer token.
var publicMethods = map[string]struct{}{
	pb.AuthService_Login_FullMethodName:             {},
	pb.AuthService_Register_FullMethodName:          {},
	pb.LedgerService_GetMessageCount_FullMethodName: {},
}

// AuthInterceptor validates the JWT of protected calls and injects the
// identity it proves into the context, where auth.ContextVerifier finds it.
func AuthInterceptor(tokens *auth.TokenManager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if isPublicMethod(info.FullMethod) {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "metadata is missing")
		}
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "authorization token is missing")
		}

		tokenStr := strings.TrimPrefix(values[0], "Bearer ")
		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}

		ctx = auth.WithIdentity(ctx, domain.Identity(claims.Identity), claims.Roles)
		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every call with its outcome code and latency.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		level := slog.LevelDebug
		if code != codes.OK {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "grpc call",
			"method", info.FullMethod,
			"code", code.String(),
			"duration", time.Since(start))
		return resp, err
	}
}

func isPublicMethod(method string) bool {
	_, ok := publicMethods[method]
	return ok
}
