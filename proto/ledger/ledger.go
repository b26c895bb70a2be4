// Package ledger holds the ledger.v1 gRPC messages declared in ledger.proto.
// They are encoded in protobuf wire format through the codec registered in
// codec.go, with the field numbers of the schema.
package ledger

import (
	"message-ledger/proto/wire"

	"google.golang.org/protobuf/encoding/protowire"
)

// WireMessage is implemented by every request and response of the package.
type WireMessage interface {
	MarshalWire() []byte
	UnmarshalWire(b []byte) error
}

type Message struct {
	Id        uint64
	Sender    string
	Receiver  string
	Content   string
	Timestamp uint64
	IsRead    bool
}

func (m *Message) MarshalWire() []byte {
	var b []byte
	b = wire.AppendVarint(b, 1, m.Id)
	b = wire.AppendString(b, 2, m.Sender)
	b = wire.AppendString(b, 3, m.Receiver)
	b = wire.AppendString(b, 4, m.Content)
	b = wire.AppendVarint(b, 5, m.Timestamp)
	b = wire.AppendBool(b, 6, m.IsRead)
	return b
}

func (m *Message) UnmarshalWire(b []byte) error {
	*m = Message{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return wire.ConsumeVarint(b, &m.Id)
		case num == 2 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &m.Sender)
		case num == 3 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &m.Receiver)
		case num == 4 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &m.Content)
		case num == 5 && typ == protowire.VarintType:
			return wire.ConsumeVarint(b, &m.Timestamp)
		case num == 6 && typ == protowire.VarintType:
			return wire.ConsumeBool(b, &m.IsRead)
		}
		return wire.Skip(num, typ, b)
	})
}

type SendMessageRequest struct {
	Sender   string
	Receiver string
	Content  string
}

func (r *SendMessageRequest) GetSender() string {
	if r == nil {
		return ""
	}
	return r.Sender
}

func (r *SendMessageRequest) GetReceiver() string {
	if r == nil {
		return ""
	}
	return r.Receiver
}

func (r *SendMessageRequest) GetContent() string {
	if r == nil {
		return ""
	}
	return r.Content
}

func (r *SendMessageRequest) MarshalWire() []byte {
	var b []byte
	b = wire.AppendString(b, 1, r.Sender)
	b = wire.AppendString(b, 2, r.Receiver)
	b = wire.AppendString(b, 3, r.Content)
	return b
}

func (r *SendMessageRequest) UnmarshalWire(b []byte) error {
	*r = SendMessageRequest{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &r.Sender)
		case num == 2 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &r.Receiver)
		case num == 3 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &r.Content)
		}
		return wire.Skip(num, typ, b)
	})
}

type SendMessageResponse struct {
	Id uint64
}

func (r *SendMessageResponse) MarshalWire() []byte {
	return wire.AppendVarint(nil, 1, r.Id)
}

func (r *SendMessageResponse) UnmarshalWire(b []byte) error {
	*r = SendMessageResponse{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return wire.ConsumeVarint(b, &r.Id)
		}
		return wire.Skip(num, typ, b)
	})
}

type GetMessageRequest struct {
	Id        uint64
	Requester string
}

func (r *GetMessageRequest) MarshalWire() []byte {
	var b []byte
	b = wire.AppendVarint(b, 1, r.Id)
	b = wire.AppendString(b, 2, r.Requester)
	return b
}

func (r *GetMessageRequest) UnmarshalWire(b []byte) error {
	*r = GetMessageRequest{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return wire.ConsumeVarint(b, &r.Id)
		case num == 2 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &r.Requester)
		}
		return wire.Skip(num, typ, b)
	})
}

type GetMessageResponse struct {
	Message *Message
}

func (r *GetMessageResponse) MarshalWire() []byte {
	if r.Message == nil {
		return nil
	}
	return wire.AppendMessage(nil, 1, r.Message.MarshalWire(), true)
}

func (r *GetMessageResponse) UnmarshalWire(b []byte) error {
	*r = GetMessageResponse{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			var raw []byte
			n, err := wire.ConsumeBytes(b, &raw)
			if err != nil {
				return 0, err
			}
			r.Message = &Message{}
			return n, r.Message.UnmarshalWire(raw)
		}
		return wire.Skip(num, typ, b)
	})
}

type MarkAsReadRequest struct {
	Id     uint64
	Reader string
}

func (r *MarkAsReadRequest) MarshalWire() []byte {
	var b []byte
	b = wire.AppendVarint(b, 1, r.Id)
	b = wire.AppendString(b, 2, r.Reader)
	return b
}

func (r *MarkAsReadRequest) UnmarshalWire(b []byte) error {
	*r = MarkAsReadRequest{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return wire.ConsumeVarint(b, &r.Id)
		case num == 2 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &r.Reader)
		}
		return wire.Skip(num, typ, b)
	})
}

type MarkAsReadResponse struct{}

func (r *MarkAsReadResponse) MarshalWire() []byte { return nil }

func (r *MarkAsReadResponse) UnmarshalWire(b []byte) error {
	return wire.Walk(b, wire.Skip)
}

type GetMessageCountRequest struct{}

func (r *GetMessageCountRequest) MarshalWire() []byte { return nil }

func (r *GetMessageCountRequest) UnmarshalWire(b []byte) error {
	return wire.Walk(b, wire.Skip)
}

type GetMessageCountResponse struct {
	Count uint64
}

func (r *GetMessageCountResponse) MarshalWire() []byte {
	return wire.AppendVarint(nil, 1, r.Count)
}

func (r *GetMessageCountResponse) UnmarshalWire(b []byte) error {
	*r = GetMessageCountResponse{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return wire.ConsumeVarint(b, &r.Count)
		}
		return wire.Skip(num, typ, b)
	})
}

type ListInboxRequest struct {
	Receiver string
	Cursor   *uint64 // optional: absent on the first page
	Limit    uint32
}

func (r *ListInboxRequest) MarshalWire() []byte {
	var b []byte
	b = wire.AppendString(b, 1, r.Receiver)
	b = appendOptionalVarint(b, 2, r.Cursor)
	b = wire.AppendVarint(b, 3, uint64(r.Limit))
	return b
}

func (r *ListInboxRequest) UnmarshalWire(b []byte) error {
	*r = ListInboxRequest{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &r.Receiver)
		case num == 2 && typ == protowire.VarintType:
			var cursor uint64
			n, err := wire.ConsumeVarint(b, &cursor)
			r.Cursor = &cursor
			return n, err
		case num == 3 && typ == protowire.VarintType:
			var limit uint64
			n, err := wire.ConsumeVarint(b, &limit)
			r.Limit = uint32(limit)
			return n, err
		}
		return wire.Skip(num, typ, b)
	})
}

type ListInboxResponse struct {
	Messages []*Message
	Cursor   *uint64 // absent once the inbox is exhausted
}

func (r *ListInboxResponse) MarshalWire() []byte {
	var b []byte
	for _, m := range r.Messages {
		b = wire.AppendMessage(b, 1, m.MarshalWire(), true)
	}
	return appendOptionalVarint(b, 2, r.Cursor)
}

func (r *ListInboxResponse) UnmarshalWire(b []byte) error {
	*r = ListInboxResponse{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			var raw []byte
			n, err := wire.ConsumeBytes(b, &raw)
			if err != nil {
				return 0, err
			}
			m := &Message{}
			if err = m.UnmarshalWire(raw); err != nil {
				return 0, err
			}
			r.Messages = append(r.Messages, m)
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			var cursor uint64
			n, err := wire.ConsumeVarint(b, &cursor)
			r.Cursor = &cursor
			return n, err
		}
		return wire.Skip(num, typ, b)
	})
}

type RegisterRequest struct {
	Email    string
	Password string
}

func (r *RegisterRequest) MarshalWire() []byte {
	return marshalCredentials(r.Email, r.Password)
}

func (r *RegisterRequest) UnmarshalWire(b []byte) error {
	*r = RegisterRequest{}
	return unmarshalCredentials(b, &r.Email, &r.Password)
}

type LoginRequest struct {
	Email    string
	Password string
}

func (r *LoginRequest) MarshalWire() []byte {
	return marshalCredentials(r.Email, r.Password)
}

func (r *LoginRequest) UnmarshalWire(b []byte) error {
	*r = LoginRequest{}
	return unmarshalCredentials(b, &r.Email, &r.Password)
}

type AuthResponse struct {
	Token    string
	Identity string
}

func (r *AuthResponse) MarshalWire() []byte {
	var b []byte
	b = wire.AppendString(b, 1, r.Token)
	b = wire.AppendString(b, 2, r.Identity)
	return b
}

func (r *AuthResponse) UnmarshalWire(b []byte) error {
	*r = AuthResponse{}
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &r.Token)
		case num == 2 && typ == protowire.BytesType:
			return wire.ConsumeString(b, &r.Identity)
		}
		return wire.Skip(num, typ, b)
	})
}

func marshalCredentials(email, password string) []byte {
	var b []byte
	b = wire.AppendString(b, 1, email)
	b = wire.AppendString(b, 2, password)
	return b
}

func unmarshalCredentials(b []byte, email, password *string) error {
	return wire.Walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return wire.ConsumeString(b, email)
		case num == 2 && typ == protowire.BytesType:
			return wire.ConsumeString(b, password)
		}
		return wire.Skip(num, typ, b)
	})
}

// appendOptionalVarint writes v even when it is zero, preserving presence.
func appendOptionalVarint(b []byte, num protowire.Number, v *uint64) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, *v)
}
