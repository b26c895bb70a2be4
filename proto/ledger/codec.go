package ledger

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
)

// CodecName is the gRPC content subtype: requests travel as application/grpc+ledger.
const CodecName = "ledger"

// codec speaks the protobuf wire format described by ledger.proto. Ledger
// messages encode themselves; any other proto.Message goes through the
// standard protobuf runtime.
type codec struct{}

func init() {
	encoding.RegisterCodec(codec{})
}

func (codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case WireMessage:
		return m.MarshalWire(), nil
	case proto.Message:
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("ledger codec: cannot marshal %T", v)
}

func (codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case WireMessage:
		return m.UnmarshalWire(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("ledger codec: cannot unmarshal into %T", v)
}

func (codec) Name() string {
	return CodecName
}

// ServerCodec makes a server decode every call with the ledger codec, so
// plain application/grpc clients built from ledger.proto are answered too.
func ServerCodec() grpc.ServerOption {
	return grpc.ForceServerCodec(codec{})
}

// withCodec selects the ledger codec for a call.
func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
