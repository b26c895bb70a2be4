package services

import (
	"context"
	"fmt"
	"log/slog"

	"message-ledger/auth"
	"message-ledger/domain"
	"message-ledger/domain/ledger"
	"message-ledger/errors"
	"message-ledger/repositories"
)

const defaultInboxPageSize = 50

type IMessagingService interface {
	SendMessage(ctx context.Context, cmd ledger.SendMessageCommand) (uint64, error)
	GetMessage(ctx context.Context, cmd ledger.GetMessageCommand) (domain.Message, error)
	MarkAsRead(ctx context.Context, cmd ledger.MarkAsReadCommand) error
	GetMessageCount(ctx context.Context) (uint64, error)
	ListInbox(ctx context.Context, cmd ledger.ListInboxCommand) ([]domain.Message, *uint64, error)
}

// MessagingService is the only writer of the ledger. Every operation proves
// the claimed identity first, then runs inside a single repository transaction.
type MessagingService struct {
	log            *slog.Logger
	verifier       auth.IdentityVerifier
	repository     repositories.ILedgerRepository
	clock          domain.Clock
	ttl            domain.TTLPolicy
	strictNotFound bool
	inboxPageSize  int
}

type Option func(*MessagingService)

func WithClock(clock domain.Clock) Option {
	return func(s *MessagingService) { s.clock = clock }
}

func WithTTLPolicy(policy domain.TTLPolicy) Option {
	return func(s *MessagingService) { s.ttl = policy }
}

// WithStrictNotFound makes GetMessage report ErrMessageNotFound instead of
// returning the "Message not found" placeholder.
func WithStrictNotFound() Option {
	return func(s *MessagingService) { s.strictNotFound = true }
}

func WithInboxPageSize(size int) Option {
	return func(s *MessagingService) {
		if size > 0 {
			s.inboxPageSize = size
		}
	}
}

func NewMessagingService(log *slog.Logger, verifier auth.IdentityVerifier,
	repository repositories.ILedgerRepository, opts ...Option) *MessagingService {
	s := &MessagingService{
		log:           log,
		verifier:      verifier,
		repository:    repository,
		clock:         domain.SystemClock(),
		ttl:           domain.DefaultTTLPolicy(),
		inboxPageSize: defaultInboxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MessagingService) SendMessage(ctx context.Context, cmd ledger.SendMessageCommand) (uint64, error) {
	if err := s.verifier.Verify(ctx, cmd.Sender); err != nil {
		return 0, err
	}

	var id uint64
	err := s.repository.Update(func(tx repositories.LedgerTx) error {
		var err error
		// The id is minted before the record exists so no two sends share one.
		if id, err = tx.NextID(); err != nil {
			return err
		}
		now := s.clock.Now()
		message := domain.NewMessage(id, cmd.Sender, cmd.Receiver, cmd.Content, now)
		if err = tx.Put(id, message); err != nil {
			return fmt.Errorf("store message %d: %w", id, err)
		}
		if err = tx.IndexInbox(message); err != nil {
			return fmt.Errorf("index message %d: %w", id, err)
		}
		return tx.ExtendTTL(message, s.ttl, now)
	})
	if err != nil {
		return 0, err
	}

	s.log.Info(fmt.Sprintf("Message sent successfully with ID: %d", id),
		"sender", cmd.Sender, "receiver", cmd.Receiver)
	return id, nil
}

// GetMessage returns the record when the requester is one of its parties.
// A missing id yields the placeholder unless strict mode is on.
func (s *MessagingService) GetMessage(ctx context.Context, cmd ledger.GetMessageCommand) (domain.Message, error) {
	if err := s.verifier.Verify(ctx, cmd.Requester); err != nil {
		return domain.Message{}, err
	}

	var message domain.Message
	err := s.repository.View(func(tx repositories.LedgerTx) error {
		stored, found, err := tx.Get(cmd.ID)
		if err != nil {
			return err
		}
		switch {
		case found:
			message = stored
		case s.strictNotFound:
			return fmt.Errorf("%w: %d", errors.ErrMessageNotFound, cmd.ID)
		default:
			message = domain.NotFoundPlaceholder(cmd.Requester)
		}
		return nil
	})
	if err != nil {
		return domain.Message{}, err
	}

	if !message.Involves(cmd.Requester) {
		s.log.Warn("Rejected message access", "message_id", cmd.ID, "requester", cmd.Requester)
		return domain.Message{}, errors.ErrUnauthorizedAccess
	}
	return message, nil
}

func (s *MessagingService) MarkAsRead(ctx context.Context, cmd ledger.MarkAsReadCommand) error {
	if err := s.verifier.Verify(ctx, cmd.Reader); err != nil {
		return err
	}

	err := s.repository.Update(func(tx repositories.LedgerTx) error {
		message, found, err := tx.Get(cmd.ID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %d", errors.ErrMessageNotFound, cmd.ID)
		}
		if !message.IsReceiver(cmd.Reader) {
			return errors.ErrForbiddenMarkRead
		}
		// Already read messages are rewritten too; the outcome is unchanged.
		message = message.MarkRead()
		if err = tx.SetRead(cmd.ID, message); err != nil {
			return fmt.Errorf("store message %d: %w", cmd.ID, err)
		}
		// The rewrite drops the expiry, so the extension always applies here.
		return tx.ExtendTTL(message, s.ttl, s.clock.Now())
	})
	if err != nil {
		return err
	}

	s.log.Info(fmt.Sprintf("Message %d marked as read", cmd.ID), "reader", cmd.Reader)
	return nil
}

// GetMessageCount needs no identity proof.
func (s *MessagingService) GetMessageCount(_ context.Context) (uint64, error) {
	var count uint64
	err := s.repository.View(func(tx repositories.LedgerTx) error {
		var err error
		count, err = tx.Count()
		return err
	})
	return count, err
}

// ListInbox pages through the messages received by cmd.Receiver, newest first.
func (s *MessagingService) ListInbox(ctx context.Context, cmd ledger.ListInboxCommand) ([]domain.Message, *uint64, error) {
	if err := s.verifier.Verify(ctx, cmd.Receiver); err != nil {
		return nil, nil, err
	}

	limit := cmd.Limit
	if limit <= 0 || limit > s.inboxPageSize {
		limit = s.inboxPageSize
	}

	var messages []domain.Message
	var cursor *uint64
	err := s.repository.View(func(tx repositories.LedgerTx) error {
		var err error
		messages, cursor, err = tx.Inbox(cmd.Receiver, cmd.Cursor, limit)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return messages, cursor, nil
}
