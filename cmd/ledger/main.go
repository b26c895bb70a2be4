package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"message-ledger/auth"
	"message-ledger/infrastructure/grpc/server"
	"message-ledger/internal"
	pb "message-ledger/proto/ledger"
	"message-ledger/repositories"
	"message-ledger/runtime/workers"
	"message-ledger/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/trickstertwo/xclock"
	"google.golang.org/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup executes before the exit code is set.
func run() error {
	// A missing .env is fine: the environment may already be populated.
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	policy, err := config.TTLPolicy()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	ledgerRepository := repositories.NewLedgerRepository(db, log)
	userRepository := repositories.NewUserRepository(db)
	tokenManager := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)

	opts := []services.Option{
		services.WithClock(xclock.Default()),
		services.WithTTLPolicy(policy),
		services.WithInboxPageSize(config.InboxPageSize),
	}
	if config.StrictNotFound {
		opts = append(opts, services.WithStrictNotFound())
	}
	messagingService := services.NewMessagingService(log, auth.NewContextVerifier(), ledgerRepository, opts...)
	authService := services.NewAuthService(userRepository, tokenManager)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.Debug() {
		internal.StartDebugServer(db, config.DebugPort, log)
	}

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewValueLogGCWorker(db, log, config.GCInterval),
		workers.NewHealthMonitoringWorker(log, messagingService, config.MetricInterval),
	)
	supCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	supervised := make(chan struct{})
	go func() {
		sup.Run(supCtx)
		close(supervised)
	}()

	s := grpc.NewServer(pb.ServerCodec(), grpc.ChainUnaryInterceptor(
		server.LoggingInterceptor(log),
		server.AuthInterceptor(tokenManager),
	))
	pb.RegisterLedgerServiceServer(s, server.NewLedgerServer(messagingService, config.MaxContentLength))
	pb.RegisterAuthServiceServer(s, server.NewAuthServer(authService))

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting gRPC server", "address", address, "at", time.Now().UTC(),
			"ttl_threshold", policy.Threshold, "ttl_extend_to", policy.ExtendTo,
			"strict_not_found", config.StrictNotFound)
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		stopWorkers()
		<-supervised
		return err
	}

	s.GracefulStop()
	stopWorkers()
	<-supervised
	log.Info("Program stopped cleanly")
	return nil
}
