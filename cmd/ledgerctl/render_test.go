package main

import (
	"bytes"
	"testing"

	"message-ledger/client"
	"message-ledger/domain"

	"github.com/stretchr/testify/require"
)

func TestRenderMessages(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer

	renderMessages(&out, []domain.Message{
		{ID: 2, Sender: "alice", Receiver: "bob", Content: "second", Timestamp: 0, IsRead: true},
		domain.NotFoundPlaceholder("bob"),
	}, false)

	text := out.String()
	req.Contains(text, "SENDER")
	req.Contains(text, "second")
	req.Contains(text, "yes")
	req.Contains(text, "Message not found")
	req.Contains(text, "1970-01-01T00:00:00Z")
}

func TestRenderSession(t *testing.T) {
	var out bytes.Buffer
	renderSession(&out, client.Session{Identity: "id-1", Token: "tok"}, false)
	require.Equal(t, "Identity: id-1\nToken: tok\n", out.String())
}

func TestParseID(t *testing.T) {
	req := require.New(t)
	id, err := parseID("42")
	req.NoError(err)
	req.Equal(uint64(42), id)

	_, err = parseID("-1")
	req.Error(err)
}

func TestRootCommand_Flags(t *testing.T) {
	req := require.New(t)
	cmd := NewRootCommand(Config{Addr: "ledger:9000", Colours: true})

	addr, err := cmd.PersistentFlags().GetString("addr")
	req.NoError(err)
	req.Equal("ledger:9000", addr)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	req.Subset(names, []string{"register", "login", "send", "get", "read", "count", "inbox"})
}
