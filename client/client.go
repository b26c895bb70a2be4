// Package client is a typed wrapper over the ledger gRPC services that
// attaches the bearer token to every protected call.
package client

import (
	"context"
	"fmt"

	"message-ledger/domain"
	pb "message-ledger/proto/ledger"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type LedgerClient struct {
	conn    *grpc.ClientConn
	ledger  pb.LedgerServiceClient
	account pb.AuthServiceClient
	token   string
}

// Dial opens a plaintext connection to address. Extra dial options are
// appended, which lets tests plug in an in-memory dialer.
func Dial(address, token string, opts ...grpc.DialOption) (*LedgerClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not connect to server at %s: %w", address, err)
	}
	return &LedgerClient{
		conn:    conn,
		ledger:  pb.NewLedgerServiceClient(conn),
		account: pb.NewAuthServiceClient(conn),
		token:   token,
	}, nil
}

func (c *LedgerClient) Close() error {
	return c.conn.Close()
}

// WithToken returns a client sharing the connection but proving another identity.
func (c *LedgerClient) WithToken(token string) *LedgerClient {
	clone := *c
	clone.token = token
	return &clone
}

// Session is the identity and token returned by Register and Login.
type Session struct {
	Identity domain.Identity
	Token    string
}

func (c *LedgerClient) Register(ctx context.Context, email, password string) (Session, error) {
	resp, err := c.account.Register(ctx, &pb.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return Session{}, err
	}
	return Session{Identity: domain.Identity(resp.Identity), Token: resp.Token}, nil
}

func (c *LedgerClient) Login(ctx context.Context, email, password string) (Session, error) {
	resp, err := c.account.Login(ctx, &pb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return Session{}, err
	}
	return Session{Identity: domain.Identity(resp.Identity), Token: resp.Token}, nil
}

func (c *LedgerClient) SendMessage(ctx context.Context, sender, receiver domain.Identity, content string) (uint64, error) {
	resp, err := c.ledger.SendMessage(c.authorize(ctx), &pb.SendMessageRequest{
		Sender:   sender.String(),
		Receiver: receiver.String(),
		Content:  content,
	})
	if err != nil {
		return 0, err
	}
	return resp.Id, nil
}

func (c *LedgerClient) GetMessage(ctx context.Context, id uint64, requester domain.Identity) (domain.Message, error) {
	resp, err := c.ledger.GetMessage(c.authorize(ctx), &pb.GetMessageRequest{Id: id, Requester: requester.String()})
	if err != nil {
		return domain.Message{}, err
	}
	if resp.Message == nil {
		return domain.Message{}, fmt.Errorf("empty response for message %d", id)
	}
	return toMessage(resp.Message), nil
}

func (c *LedgerClient) MarkAsRead(ctx context.Context, id uint64, reader domain.Identity) error {
	_, err := c.ledger.MarkAsRead(c.authorize(ctx), &pb.MarkAsReadRequest{Id: id, Reader: reader.String()})
	return err
}

func (c *LedgerClient) GetMessageCount(ctx context.Context) (uint64, error) {
	resp, err := c.ledger.GetMessageCount(ctx, &pb.GetMessageCountRequest{})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *LedgerClient) ListInbox(ctx context.Context, receiver domain.Identity, cursor *uint64, limit int) ([]domain.Message, *uint64, error) {
	resp, err := c.ledger.ListInbox(c.authorize(ctx), &pb.ListInboxRequest{
		Receiver: receiver.String(),
		Cursor:   cursor,
		Limit:    uint32(max(limit, 0)),
	})
	if err != nil {
		return nil, nil, err
	}
	return lo.Map(resp.Messages, func(item *pb.Message, _ int) domain.Message {
		return toMessage(item)
	}), resp.Cursor, nil
}

func (c *LedgerClient) authorize(ctx context.Context) context.Context {
	if c.token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
}

func toMessage(m *pb.Message) domain.Message {
	return domain.Message{
		ID:        m.Id,
		Sender:    domain.Identity(m.Sender),
		Receiver:  domain.Identity(m.Receiver),
		Content:   m.Content,
		Timestamp: m.Timestamp,
		IsRead:    m.IsRead,
	}
}
