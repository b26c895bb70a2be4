package ledger

import "message-ledger/domain"

type SendMessageCommand struct {
	Sender   domain.Identity
	Receiver domain.Identity
	Content  string
}

type GetMessageCommand struct {
	ID        uint64
	Requester domain.Identity
}

type MarkAsReadCommand struct {
	ID     uint64
	Reader domain.Identity
}

// ListInboxCommand pages through the messages addressed to Receiver,
// newest first. Cursor is the last id of the previous page.
type ListInboxCommand struct {
	Receiver domain.Identity
	Cursor   *uint64
	Limit    int
}
