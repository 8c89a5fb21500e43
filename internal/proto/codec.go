package proto

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	protobuf "google.golang.org/protobuf/proto"
)

// CodecName is the content-subtype clients see for the ShortURLService codec.
const CodecName = "json"

// Codec marshals the plain Go messages of this package as JSON and hands
// real protobuf messages (health checks, reflection) to the protobuf codec.
type Codec struct{}

var _ encoding.Codec = Codec{}

func (Codec) Marshal(v interface{}) ([]byte, error) {
	if m, ok := v.(protobuf.Message); ok {
		return protobuf.Marshal(m)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return b, nil
}

func (Codec) Unmarshal(data []byte, v interface{}) error {
	if m, ok := v.(protobuf.Message); ok {
		return protobuf.Unmarshal(data, m)
	}

	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", v, err)
	}
	return nil
}

func (Codec) Name() string {
	return CodecName
}
