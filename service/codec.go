package service

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Name of the codec, sent as the content-subtype of every call: application/grpc+json.
const CodecName = "json"

// jsonCodec marshals the plain Go messages of this package with encoding/json, so the service
// needs no generated protobuf code.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
