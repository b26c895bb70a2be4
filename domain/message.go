// Package domain contains core concepts of the message ledger.
// Messages are immutable once written, except for the read flag
// which only ever moves from unread to read.
package domain

import "time"

// Identity is an opaque principal able to prove control of itself.
type Identity string

func (i Identity) String() string {
	return string(i)
}

const notFoundContent = "Message not found"

// Message is an addressed record between two identities.
type Message struct {
	ID        uint64
	Sender    Identity
	Receiver  Identity
	Content   string
	Timestamp uint64 // unix seconds from the clock source
	IsRead    bool
}

// NewMessage builds an unread message stamped at the given instant.
func NewMessage(id uint64, sender, receiver Identity, content string, at time.Time) Message {
	return Message{
		ID:        id,
		Sender:    sender,
		Receiver:  receiver,
		Content:   content,
		Timestamp: Timestamp(at),
		IsRead:    false,
	}
}

// NotFoundPlaceholder is the soft-miss value returned when a lookup finds nothing.
// Both parties are the requester so the placeholder always passes the access check.
func NotFoundPlaceholder(requester Identity) Message {
	return Message{
		ID:       0,
		Sender:   requester,
		Receiver: requester,
		Content:  notFoundContent,
	}
}

// IsPlaceholder reports whether m is a soft-miss value rather than a stored record.
func (m Message) IsPlaceholder() bool {
	return m.ID == 0
}

// Involves reports whether identity is the sender or the receiver.
func (m Message) Involves(identity Identity) bool {
	return m.Sender == identity || m.Receiver == identity
}

func (m Message) IsReceiver(identity Identity) bool {
	return m.Receiver == identity
}

// MarkRead returns a copy with the read flag set. Marking twice is a no-op.
func (m Message) MarkRead() Message {
	m.IsRead = true
	return m
}

// Timestamp converts an instant into the ledger representation.
// Instants before the epoch collapse to zero.
func Timestamp(at time.Time) uint64 {
	secs := at.Unix()
	if secs < 0 {
		return 0
	}
	return uint64(secs)
}
