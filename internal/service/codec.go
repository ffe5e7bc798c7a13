package service

import (
	"encoding/json"
)

// jsonCodec marshals plain Go messages for Connect. It is registered under
// the name "json" so it replaces Connect's protobuf-only JSON codec and
// serves "application/json" requests.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
