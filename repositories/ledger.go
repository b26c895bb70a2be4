//go:generate go run go.uber.org/mock/mockgen -source=ledger.go -destination=../mocks/mock_ledger_repository.go -package=mocks
package repositories

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"message-ledger/domain"
	pb "message-ledger/proto/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const (
	messagePrefix = "msg:"
	inboxPrefix   = "inbox:"
	counterKey    = "meta:message_count"
)

// ILedgerRepository runs each ledger operation inside a single transaction.
// An error returned by the callback discards every write made through tx.
type ILedgerRepository interface {
	Update(fn func(tx LedgerTx) error) error
	View(fn func(tx LedgerTx) error) error
}

// LedgerTx is the view of the store available to one operation.
type LedgerTx interface {
	NextID() (uint64, error)
	Count() (uint64, error)
	Put(id uint64, message domain.Message) error
	Get(id uint64) (domain.Message, bool, error)
	SetRead(id uint64, message domain.Message) error
	IndexInbox(message domain.Message) error
	Inbox(receiver domain.Identity, cursor *uint64, limit int) ([]domain.Message, *uint64, error)
	ExtendTTL(message domain.Message, policy domain.TTLPolicy, now time.Time) error
}

type LedgerRepository struct {
	db  *badger.DB
	log *slog.Logger
	// badger detects write conflicts optimistically; holding mu keeps
	// writers strictly sequential so the counter never conflicts.
	mu sync.Mutex
}

func NewLedgerRepository(db *badger.DB, log *slog.Logger) *LedgerRepository {
	return &LedgerRepository{db: db, log: log}
}

func (r *LedgerRepository) Update(fn func(tx LedgerTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Update(func(txn *badger.Txn) error {
		return fn(badgerTx{txn: txn, log: r.log})
	})
}

func (r *LedgerRepository) View(fn func(tx LedgerTx) error) error {
	return r.db.View(func(txn *badger.Txn) error {
		return fn(badgerTx{txn: txn, log: r.log})
	})
}

type badgerTx struct {
	txn *badger.Txn
	log *slog.Logger
}

// NextID increments the counter and returns the new value, which becomes
// the id of the message about to be written. Ids start at 1.
func (t badgerTx) NextID() (uint64, error) {
	count, err := t.Count()
	if err != nil {
		return 0, err
	}
	count++
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, count)
	// No TTL: an expired counter would hand out ids again.
	if err = t.txn.Set([]byte(counterKey), value); err != nil {
		return 0, fmt.Errorf("persist counter: %w", err)
	}
	return count, nil
}

func (t badgerTx) Count() (uint64, error) {
	item, err := t.txn.Get([]byte(counterKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}
	var count uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupted counter of %d bytes", len(val))
		}
		count = binary.BigEndian.Uint64(val)
		return nil
	})
	return count, err
}

// Put overwrites or creates the record stored at id.
func (t badgerTx) Put(id uint64, message domain.Message) error {
	record := fromMessage(message)
	return t.txn.Set(messageKey(id), record.Marshal())
}

func (t badgerTx) Get(id uint64) (domain.Message, bool, error) {
	item, err := t.txn.Get(messageKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Message{}, false, nil
	}
	if err != nil {
		return domain.Message{}, false, err
	}
	var record pb.Message
	if err = item.Value(record.Unmarshal); err != nil {
		return domain.Message{}, false, fmt.Errorf("decode message %d: %w", id, err)
	}
	return toMessage(&record), true, nil
}

// SetRead persists a record whose read flag has already been flipped.
func (t badgerTx) SetRead(id uint64, message domain.Message) error {
	return t.Put(id, message)
}

// IndexInbox adds the message id to the receiver's ordered inbox.
func (t badgerTx) IndexInbox(message domain.Message) error {
	return t.txn.Set(inboxKey(message.Receiver, message.ID), nil)
}

// Inbox walks the receiver's index from the newest id downwards.
// The returned cursor is nil once the index is exhausted.
func (t badgerTx) Inbox(receiver domain.Identity, cursor *uint64, limit int) ([]domain.Message, *uint64, error) {
	if limit <= 0 {
		return nil, nil, fmt.Errorf("invalid inbox limit %d", limit)
	}
	prefix := inboxKeyPrefix(receiver)
	options := badger.DefaultIteratorOptions
	options.Reverse = true
	options.PrefetchValues = false
	it := t.txn.NewIterator(options)
	defer it.Close()

	var seekKey []byte
	switch cursor {
	case nil:
		// 0xFF sorts after every padded id of this receiver.
		seekKey = append(append([]byte{}, prefix...), 0xFF)
	default:
		seekKey = inboxKey(receiver, *cursor)
	}

	ids := make([]uint64, 0, limit)
	exhausted := true
	for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
		id, err := strconv.ParseUint(string(it.Item().Key()[len(prefix):]), 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("corrupted inbox key %q: %w", it.Item().Key(), err)
		}
		if cursor != nil && id >= *cursor {
			continue
		}
		if len(ids) == limit {
			t.log.Debug(fmt.Sprintf("Maximum of %d messages reached", limit))
			exhausted = false
			break
		}
		ids = append(ids, id)
	}

	messages := make([]domain.Message, 0, len(ids))
	for _, id := range ids {
		message, found, err := t.Get(id)
		if err != nil {
			return nil, nil, err
		}
		if !found {
			// the record expired before its index entry
			continue
		}
		messages = append(messages, message)
	}
	if exhausted || len(ids) == 0 {
		return messages, nil, nil
	}
	return messages, lo.ToPtr(ids[len(ids)-1]), nil
}

// ExtendTTL applies extend_ttl(threshold, extend_to) to the message and its
// inbox entry: a key with less than Threshold left at now is rewritten to live ExtendTo.
func (t badgerTx) ExtendTTL(message domain.Message, policy domain.TTLPolicy, now time.Time) error {
	for _, key := range [][]byte{messageKey(message.ID), inboxKey(message.Receiver, message.ID)} {
		if err := t.extend(key, policy, now); err != nil {
			return err
		}
	}
	return nil
}

func (t badgerTx) extend(key []byte, policy domain.TTLPolicy, now time.Time) error {
	item, err := t.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !policy.NeedsExtension(item.ExpiresAt(), now) {
		return nil
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}
	return t.txn.SetEntry(badger.NewEntry(key, value).WithTTL(policy.ExtendTo))
}

// Padding keeps lexicographical order equal to numerical order.
func messageKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", messagePrefix, id))
}

// Identities are escaped so a ':' inside one cannot spill into another inbox.
func inboxKeyPrefix(receiver domain.Identity) []byte {
	return []byte(inboxPrefix + url.QueryEscape(receiver.String()) + ":")
}

func inboxKey(receiver domain.Identity, id uint64) []byte {
	return fmt.Appendf(inboxKeyPrefix(receiver), "%020d", id)
}

func fromMessage(message domain.Message) pb.Message {
	return pb.Message{
		Id:        message.ID,
		Sender:    message.Sender.String(),
		Receiver:  message.Receiver.String(),
		Content:   message.Content,
		Timestamp: message.Timestamp,
		IsRead:    message.IsRead,
	}
}

func toMessage(record *pb.Message) domain.Message {
	return domain.Message{
		ID:        record.Id,
		Sender:    domain.Identity(record.Sender),
		Receiver:  domain.Identity(record.Receiver),
		Content:   record.Content,
		Timestamp: record.Timestamp,
		IsRead:    record.IsRead,
	}
}
