package main

import (
	"bytes"
	"testing"
)

func TestEncodeStateBothFormats(t *testing.T) {
	state := GameState{
		Tick:    42,
		Mode:    "plane",
		Players: []PlayerState{{ID: 1, Name: "Ace", X: 10.5, Weapon: WeaponMissile, Alive: true}},
		Events:  []Event{{Type: EventExplosion, X: 1, Y: 2, Color: "#fff"}},
	}
	frames, err := EncodeState(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if !bytes.HasPrefix(frames.JSON, []byte(`{"t":"state","d":`)) {
		t.Errorf("json frame should be a state envelope, got %s", frames.JSON)
	}
	var env InEnvelope
	if err := json.Unmarshal(frames.JSON, &env); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	var fromJSON GameState
	if err := json.Unmarshal(env.D, &fromJSON); err != nil {
		t.Fatalf("decode json state: %v", err)
	}

	var fromBin GameState
	if err := UnmarshalMsgpack(frames.Binary, &fromBin); err != nil {
		t.Fatalf("decode msgpack: %v", err)
	}

	for name, got := range map[string]GameState{"json": fromJSON, "msgpack": fromBin} {
		if got.Tick != 42 || got.Mode != "plane" {
			t.Errorf("%s: header mismatch %+v", name, got)
		}
		if len(got.Players) != 1 || got.Players[0].Name != "Ace" || got.Players[0].Weapon != WeaponMissile {
			t.Errorf("%s: players mismatch %+v", name, got.Players)
		}
		if len(got.Events) != 1 || got.Events[0].Type != EventExplosion {
			t.Errorf("%s: events mismatch %+v", name, got.Events)
		}
	}
}

func TestMsgpackUsesJSONFieldNames(t *testing.T) {
	data, err := MarshalMsgpack(PlayerLeftMsg{ID: 5})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var m map[string]interface{}
	if err := UnmarshalMsgpack(data, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := m["id"]; !ok {
		t.Errorf("expected key id, got %v", m)
	}
}

func TestClientInputAliases(t *testing.T) {
	tests := []struct {
		raw  string
		want Input
	}{
		{`{"up":true,"left":true,"space":true}`, Input{Up: true, Left: true, Fire: true}},
		{`{"accelerate":true,"turnUp":true,"fire":true}`, Input{Up: true, Left: true, Fire: true}},
		{`{"decelerate":true,"turnDown":true}`, Input{Down: true, Right: true}},
		{`{"right":true,"shift":true}`, Input{Right: true, Shift: true}},
		{`{}`, Input{}},
	}
	for _, tt := range tests {
		var in ClientInput
		if err := decodePayload([]byte(tt.raw), &in); err != nil {
			t.Fatalf("%s: %v", tt.raw, err)
		}
		if got := in.Normalize(); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.raw, tt.want, got)
		}
	}
}

func TestDecodePayloadEmpty(t *testing.T) {
	msg := JoinMsg{Name: "keep"}
	if err := decodePayload(nil, &msg); err != nil {
		t.Fatalf("empty payload: %v", err)
	}
	if msg.Name != "keep" {
		t.Error("empty payload should leave the target untouched")
	}
	if err := decodePayload([]byte(`{"name":`), &msg); err == nil {
		t.Error("expected an error for truncated json")
	}
}
