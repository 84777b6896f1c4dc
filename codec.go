package main

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack/v5"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StateFrames is one snapshot encoded once per wire format
type StateFrames struct {
	JSON   []byte // text frame: {"t":"state","d":...}
	Binary []byte // binary frame: msgpack GameState
}

// EncodeState encodes a snapshot for both JSON and msgpack clients
func EncodeState(state GameState) (*StateFrames, error) {
	text, err := json.Marshal(Envelope{T: MsgState, Data: state})
	if err != nil {
		return nil, fmt.Errorf("encode state json: %w", err)
	}
	bin, err := MarshalMsgpack(state)
	if err != nil {
		return nil, fmt.Errorf("encode state msgpack: %w", err)
	}
	return &StateFrames{JSON: text, Binary: bin}, nil
}

// MarshalMsgpack encodes v with the JSON field names so both formats share one schema
func MarshalMsgpack(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	enc.Reset(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalMsgpack is the inverse of MarshalMsgpack
func UnmarshalMsgpack(data []byte, v interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

// decodePayload decodes an envelope payload. An empty payload leaves v untouched.
func decodePayload(raw []byte, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
