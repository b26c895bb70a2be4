// Package storage holds the records persisted in badger, laid out by
// storage.proto and encoded in protobuf wire format so fields can be added
// without rewriting entries.
package storage

import (
	"message-ledger/proto/wire"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	messageID        protowire.Number = 1
	messageSender    protowire.Number = 2
	messageReceiver  protowire.Number = 3
	messageContent   protowire.Number = 4
	messageTimestamp protowire.Number = 5
	messageIsRead    protowire.Number = 6
)

type Message struct {
	Id        uint64
	Sender    string
	Receiver  string
	Content   string
	Timestamp uint64
	IsRead    bool
}

func (m *Message) Marshal() []byte {
	var b []byte
	b = wire.AppendVarint(b, messageID, m.Id)
	b = wire.AppendString(b, messageSender, m.Sender)
	b = wire.AppendString(b, messageReceiver, m.Receiver)
	b = wire.AppendString(b, messageContent, m.Content)
	b = wire.AppendVarint(b, messageTimestamp, m.Timestamp)
	b = wire.AppendBool(b, messageIsRead, m.IsRead)
	return b
}

func (m *Message) Unmarshal(b []byte) error {
	*m = Message{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == messageID && typ == protowire.VarintType:
			return wire.ConsumeVarint(b, &m.Id)
		case num == messageSender && typ == protowire.BytesType:
			return wire.ConsumeString(b, &m.Sender)
		case num == messageReceiver && typ == protowire.BytesType:
			return wire.ConsumeString(b, &m.Receiver)
		case num == messageContent && typ == protowire.BytesType:
			return wire.ConsumeString(b, &m.Content)
		case num == messageTimestamp && typ == protowire.VarintType:
			return wire.ConsumeVarint(b, &m.Timestamp)
		case num == messageIsRead && typ == protowire.VarintType:
			return wire.ConsumeBool(b, &m.IsRead)
		}
		return wire.Skip(num, typ, b)
	})
}

const (
	userID           protowire.Number = 1
	userEmail        protowire.Number = 2
	userPasswordHash protowire.Number = 3
	userRoles        protowire.Number = 4
	userCreatedAt    protowire.Number = 5
)

type User struct {
	Id           string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    int64
}

func (u *User) Marshal() []byte {
	var b []byte
	b = wire.AppendString(b, userID, u.Id)
	b = wire.AppendString(b, userEmail, u.Email)
	b = wire.AppendString(b, userPasswordHash, u.PasswordHash)
	b = wire.AppendRepeatedString(b, userRoles, u.Roles)
	b = wire.AppendVarint(b, userCreatedAt, uint64(u.CreatedAt))
	return b
}

func (u *User) Unmarshal(b []byte) error {
	*u = User{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == userID && typ == protowire.BytesType:
			return wire.ConsumeString(b, &u.Id)
		case num == userEmail && typ == protowire.BytesType:
			return wire.ConsumeString(b, &u.Email)
		case num == userPasswordHash && typ == protowire.BytesType:
			return wire.ConsumeString(b, &u.PasswordHash)
		case num == userRoles && typ == protowire.BytesType:
			var role string
			n, err := wire.ConsumeString(b, &role)
			u.Roles = append(u.Roles, role)
			return n, err
		case num == userCreatedAt && typ == protowire.VarintType:
			var v uint64
			n, err := wire.ConsumeVarint(b, &v)
			u.CreatedAt = int64(v)
			return n, err
		}
		return wire.Skip(num, typ, b)
	})
}
