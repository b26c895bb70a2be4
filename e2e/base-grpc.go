package e2e

import (
	"context"
	"fmt"
	"testing"
	"time"

	"message-ledger/client"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const e2ePassword = "E2e!Passw0rd-42"

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.LedgerAddr == "" {
		s.T().Skip("E2E_LEDGER_ADDR is not set")
	}
}

// LedgerClient connects to the running ledger and logs every call.
func (s *BaseGrpcSuite) LedgerClient(t *testing.T, name string) *client.LedgerClient {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	c, err := client.Dial(s.Config.LedgerAddr, "",
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)
			t.Logf("GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
			return err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+s.Config.LedgerAddr)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// NewAccount registers a throwaway account on the running ledger.
func (s *BaseGrpcSuite) NewAccount(c *client.LedgerClient, name string) client.Session {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	session, err := c.Register(ctx, fmt.Sprintf("%s-%s@e2e.test", name, uuid.NewString()), e2ePassword)
	s.Require().NoError(err)
	return session
}
