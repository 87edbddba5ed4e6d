// Package codec provides the payload codecs the database engines use to
// store entities.
package codec

import (
	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"
)

// Codec encodes entities into the byte payloads a database engine stores
// and decodes stored payloads back into entities.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error

	// Name reports the codec's short name, for logs and metric labels.
	Name() string
}

var (
	// JSON encodes payloads as JSON with json-iterator's fastest
	// configuration. It is the default codec of every engine and the one
	// that keeps payloads queryable in PostgreSQL's JSONB columns.
	JSON Codec = jsonCodec{}

	// CBOR encodes payloads in the compact CBOR binary format, for engines
	// that store payloads as opaque blobs.
	CBOR Codec = cborCodec{}
)

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return jsoniter.ConfigFastest.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}

type cborCodec struct{}

func (cborCodec) Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (cborCodec) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

func (cborCodec) Name() string {
	return "cbor"
}
