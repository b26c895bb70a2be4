// Package wire contains the protobuf wire helpers shared by the storage
// records and the gRPC messages. Zero values are omitted like proto3 does.
package wire

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

func AppendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func AppendBool(b []byte, num protowire.Number, v bool) []byte {
	return AppendVarint(b, num, protowire.EncodeBool(v))
}

func AppendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// AppendRepeatedString writes every element, empty ones included.
func AppendRepeatedString(b []byte, num protowire.Number, values []string) []byte {
	for _, v := range values {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, v)
	}
	return b
}

// AppendMessage writes an embedded message. A nil encoding is still written
// when present is true, so an empty sub-message survives the round trip.
func AppendMessage(b []byte, num protowire.Number, encoded []byte, present bool) []byte {
	if !present {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, encoded)
}

var ErrInvalidUTF8 = errors.New("string field contains invalid UTF-8")

// FieldFunc decodes the value of one field and returns the bytes consumed.
type FieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func Walk(b []byte, field FieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("invalid tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		m, err := field(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		b = b[m:]
	}
	return nil
}

func ConsumeVarint(b []byte, v *uint64) (int, error) {
	val, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*v = val
	return n, nil
}

func ConsumeBool(b []byte, v *bool) (int, error) {
	var raw uint64
	n, err := ConsumeVarint(b, &raw)
	*v = protowire.DecodeBool(raw)
	return n, err
}

// ConsumeString rejects invalid UTF-8 the way proto3 string fields do.
func ConsumeString(b []byte, s *string) (int, error) {
	val, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if !utf8.ValidString(val) {
		return 0, ErrInvalidUTF8
	}
	*s = val
	return n, nil
}

// ConsumeBytes returns the raw payload of a length-delimited field.
func ConsumeBytes(b []byte, v *[]byte) (int, error) {
	val, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*v = val
	return n, nil
}

// Skip ignores unknown fields.
func Skip(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}
