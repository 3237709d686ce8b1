// internal/signaling/messages.go
package signaling

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Inbound message types as sent by the browser client.
const (
	TypeJoinRoom           = "join-room"
	TypeLeaveRoom          = "leave-room"
	TypeChatMessage        = "chat-message"
	TypeWebRTCOffer        = "webrtc-offer"
	TypeWebRTCAnswer       = "webrtc-answer"
	TypeWebRTCICECandidate = "webrtc-ice-candidate"
	TypeGameAction         = "game-action"
)

// Outbound message types.
const (
	TypeUserJoined = "user-joined"
	TypeRoomState  = "room-state"
	TypeUserLeft   = "user-left"
	TypeGameUpdate = "game-update"
)

// ErrUnknownMessageType is returned by DecodeInbound for a frame whose "type"
// field names no known message kind.
var ErrUnknownMessageType = errors.New("unknown message type")

// Inbound is the closed set of messages a client may send. Each concrete type
// corresponds to one "type" tag on the wire; DecodeInbound is the only place
// raw frames are interpreted, so the router can switch exhaustively.
type Inbound interface {
	inbound()
}

// JoinRoom registers the sender as a member of a room. The room is created on
// first join; an isPlayer request beyond the room's player capacity is
// satisfied by seating the sender as a spectator instead.
type JoinRoom struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	IsPlayer bool   `json:"isPlayer"`
}

// LeaveRoom removes the sender from its room without closing the transport.
type LeaveRoom struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// ChatMessage is fanned out to the whole room, sender included.
type ChatMessage struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

// Signal is a connection-negotiation relay (offer, answer, or ICE candidate).
// The payload is opaque to the server and forwarded verbatim to exactly one
// target connection. Kind holds the original "type" tag.
type Signal struct {
	Kind         string          `json:"-"`
	RoomID       string          `json:"roomId"`
	TargetUserID string          `json:"targetUserId"`
	Offer        json.RawMessage `json:"offer,omitempty"`
	Answer       json.RawMessage `json:"answer,omitempty"`
	Candidate    json.RawMessage `json:"candidate,omitempty"`
}

// GameAction carries an opaque game event to be rebroadcast to the room.
type GameAction struct {
	RoomID string          `json:"roomId"`
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func (*JoinRoom) inbound()    {}
func (*LeaveRoom) inbound()   {}
func (*ChatMessage) inbound() {}
func (*Signal) inbound()      {}
func (*GameAction) inbound()  {}

// DecodeInbound parses one text frame into its typed message. The frame is
// unmarshaled twice: once for the envelope tag, once into the concrete type.
func DecodeInbound(data []byte) (Inbound, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch env.Type {
	case TypeJoinRoom:
		var m JoinRoom
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("malformed %s: %w", env.Type, err)
		}
		return &m, nil
	case TypeLeaveRoom:
		var m LeaveRoom
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("malformed %s: %w", env.Type, err)
		}
		return &m, nil
	case TypeChatMessage:
		var m ChatMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("malformed %s: %w", env.Type, err)
		}
		return &m, nil
	case TypeWebRTCOffer, TypeWebRTCAnswer, TypeWebRTCICECandidate:
		var m Signal
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("malformed %s: %w", env.Type, err)
		}
		m.Kind = env.Type
		return &m, nil
	case TypeGameAction:
		var m GameAction
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("malformed %s: %w", env.Type, err)
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, env.Type)
	}
}

// MemberInfo identifies one room member in roster payloads.
type MemberInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// RoomStats reports the current member counts of a room.
type RoomStats struct {
	Players    int `json:"players"`
	Spectators int `json:"spectators"`
}

// RoomInfo is the full roster snapshot sent to a joining connection.
type RoomInfo struct {
	ID         string       `json:"id"`
	Players    []MemberInfo `json:"players"`
	Spectators []MemberInfo `json:"spectators"`
}

// UserJoined announces a new member to the whole room, joiner included.
type UserJoined struct {
	Type string `json:"type"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		IsPlayer bool   `json:"isPlayer"`
	} `json:"user"`
	RoomStats RoomStats `json:"roomStats"`
}

// RoomState delivers the roster to the joining connection only.
type RoomState struct {
	Type string   `json:"type"`
	Room RoomInfo `json:"room"`
}

// UserLeft announces a departure to the remaining members.
type UserLeft struct {
	Type      string    `json:"type"`
	UserID    string    `json:"userId"`
	RoomStats RoomStats `json:"roomStats"`
}

// ChatEvent is the server-stamped form of a ChatMessage.
type ChatEvent struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SignalEvent is a relayed Signal with the sender's identity attached.
type SignalEvent struct {
	Type       string          `json:"type"`
	Offer      json.RawMessage `json:"offer,omitempty"`
	Answer     json.RawMessage `json:"answer,omitempty"`
	Candidate  json.RawMessage `json:"candidate,omitempty"`
	FromUserID string          `json:"fromUserId"`
}

// GameUpdate is the rebroadcast form of a GameAction.
type GameUpdate struct {
	Type   string          `json:"type"`
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
	UserID string          `json:"userId"`
}
