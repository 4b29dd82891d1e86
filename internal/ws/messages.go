package ws

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Server -> client message types
const (
	MsgGameState  = "gameState"
	MsgMatchEvent = "matchEvent"
)

// Client -> server message types
const (
	MsgPaddleMove = "paddleMove"
)

// Codec selects how server -> client frames are encoded.
type Codec string

const (
	CodecJSON    Codec = "json"    // text frames
	CodecMsgpack Codec = "msgpack" // binary frames, same keys as JSON
)

// ParseCodec maps a query value to a codec, defaulting to JSON.
func ParseCodec(s string) Codec {
	if Codec(s) == CodecMsgpack {
		return CodecMsgpack
	}
	return CodecJSON
}

// Envelope wraps every outgoing message with its type.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// WSMessage is an incoming frame; Data is decoded per type.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// PaddleMoveData is the payload of a paddleMove message.
type PaddleMoveData struct {
	Side string   `json:"side"`
	Y    *float64 `json:"y"`
}

// frame is an encoded message ready for the wire.
type frame struct {
	kind int // websocket.TextMessage or websocket.BinaryMessage
	data []byte
}

// encode renders an envelope in the given codec.
func encode(codec Codec, msgType string, data interface{}) (frame, error) {
	env := Envelope{Type: msgType, Data: data}

	if codec == CodecMsgpack {
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(env); err != nil {
			return frame{}, fmt.Errorf("msgpack encode %s: %w", msgType, err)
		}
		return frame{kind: websocket.BinaryMessage, data: buf.Bytes()}, nil
	}

	b, err := json.Marshal(env)
	if err != nil {
		return frame{}, fmt.Errorf("json encode %s: %w", msgType, err)
	}
	return frame{kind: websocket.TextMessage, data: b}, nil
}
