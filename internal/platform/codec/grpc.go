package codec

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Name is the gRPC content subtype served by GRPCCodec
// (application/grpc+cbor).
const Name = "cbor"

// GRPCCodec carries gRPC messages as deterministic CBOR.
type GRPCCodec struct{}

// Marshal implements encoding.Codec.
func (GRPCCodec) Marshal(v any) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal implements encoding.Codec.
func (GRPCCodec) Unmarshal(data []byte, v any) error {
	if err := Unmarshal(data, v); err != nil {
		return fmt.Errorf("cbor unmarshal %T: %w", v, err)
	}
	return nil
}

// Name implements encoding.Codec.
func (GRPCCodec) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(GRPCCodec{})
}
