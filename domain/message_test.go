package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMessage_IsUnread(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	msg := NewMessage(7, "alice", "bob", "hi", at)

	req.Equal(uint64(7), msg.ID)
	req.Equal(uint64(at.Unix()), msg.Timestamp)
	req.False(msg.IsRead)
	req.False(msg.IsPlaceholder())
}

func TestMarkRead_IsOneWay(t *testing.T) {
	req := require.New(t)
	msg := NewMessage(1, "alice", "bob", "hi", time.Now())

	read := msg.MarkRead()
	req.True(read.IsRead)
	req.False(msg.IsRead, "original value is left untouched")
	req.Equal(read, read.MarkRead())
}

func TestAccessRules(t *testing.T) {
	req := require.New(t)
	msg := NewMessage(1, "alice", "bob", "hi", time.Now())

	req.True(msg.Involves("alice"))
	req.True(msg.Involves("bob"))
	req.False(msg.Involves("carol"))
	req.True(msg.IsReceiver("bob"))
	req.False(msg.IsReceiver("alice"))
}

func TestNotFoundPlaceholder(t *testing.T) {
	req := require.New(t)

	msg := NotFoundPlaceholder("carol")

	req.True(msg.IsPlaceholder())
	req.Equal("Message not found", msg.Content)
	req.Zero(msg.Timestamp)
	req.False(msg.IsRead)
	req.True(msg.Involves("carol"))
}

func TestTTLPolicy_NeedsExtension(t *testing.T) {
	req := require.New(t)
	now := time.Unix(1_000_000, 0)
	policy := TTLPolicy{Threshold: time.Hour, ExtendTo: 2 * time.Hour}

	req.True(policy.NeedsExtension(0, now))
	req.True(policy.NeedsExtension(uint64(now.Add(30*time.Minute).Unix()), now))
	req.False(policy.NeedsExtension(uint64(now.Add(90*time.Minute).Unix()), now))
}

func TestDefaultTTLPolicy(t *testing.T) {
	req := require.New(t)
	policy := DefaultTTLPolicy()
	req.Equal(500000*time.Second, policy.Threshold)
	req.Equal(policy.Threshold, policy.ExtendTo)
}

func TestTimestamp_BeforeEpoch(t *testing.T) {
	require.Zero(t, Timestamp(time.Unix(-10, 0)))
}
