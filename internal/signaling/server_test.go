// internal/signaling/server_test.go
package signaling

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s := NewServer(logger)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "msg-1" }
	return s
}

// join attaches a fresh connection and sends its join-room message.
func join(s *Server, roomID, userID, username string, asPlayer bool) *Conn {
	c := NewConn()
	s.Handle(c, &JoinRoom{RoomID: roomID, UserID: userID, Username: username, IsPlayer: asPlayer})
	return c
}

// drain decodes every frame currently queued for the connection.
func drain(t *testing.T, c *Conn) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for {
		select {
		case data, ok := <-c.Outbound():
			if !ok {
				return out
			}
			var m map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &m))
			out = append(out, m)
		default:
			return out
		}
	}
}

// ofType filters drained frames by their type tag.
func ofType(frames []map[string]interface{}, typ string) []map[string]interface{} {
	var out []map[string]interface{}
	for _, f := range frames {
		if f["type"] == typ {
			out = append(out, f)
		}
	}
	return out
}

func stats(f map[string]interface{}) (players, spectators float64) {
	rs := f["roomStats"].(map[string]interface{})
	return rs["players"].(float64), rs["spectators"].(float64)
}

func TestFirstTwoPlayersSeatedThirdDowngraded(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	b := join(s, "r1", "ub", "Berta", true)
	c := join(s, "r1", "uc", "Carlos", true)

	assert.Equal(t, RolePlayer, a.Role)
	assert.Equal(t, RolePlayer, b.Role)
	assert.Equal(t, RoleSpectator, c.Role)

	room := s.rooms["r1"]
	require.NotNil(t, room)
	assert.Len(t, room.Players, 2)
	assert.Len(t, room.Spectators, 1)

	// Everyone sees the third join announced as a spectator with live counts.
	frames := drain(t, a)
	joins := ofType(frames, TypeUserJoined)
	require.Len(t, joins, 3)
	last := joins[2]
	user := last["user"].(map[string]interface{})
	assert.Equal(t, "uc", user["id"])
	assert.Equal(t, false, user["isPlayer"])
	players, spectators := stats(last)
	assert.Equal(t, float64(2), players)
	assert.Equal(t, float64(1), spectators)
}

func TestRoomStateSentToJoinerOnly(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	b := join(s, "r1", "ub", "Berta", true)

	aFrames := drain(t, a)
	require.Len(t, ofType(aFrames, TypeRoomState), 1)
	state := ofType(aFrames, TypeRoomState)[0]["room"].(map[string]interface{})
	assert.Equal(t, "r1", state["id"])
	playersList := state["players"].([]interface{})
	require.Len(t, playersList, 1)
	assert.Equal(t, "ua", playersList[0].(map[string]interface{})["id"])

	// B's roster includes both players; B never receives A's room-state.
	bFrames := drain(t, b)
	bStates := ofType(bFrames, TypeRoomState)
	require.Len(t, bStates, 1)
	assert.Len(t, bStates[0]["room"].(map[string]interface{})["players"].([]interface{}), 2)
}

func TestRoomStatsMatchMembershipAfterEveryChange(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	join(s, "r1", "ub", "Berta", false)
	drain(t, a)

	s.Handle(a, &ChatMessage{RoomID: "r1", Text: "marker"})
	c := join(s, "r1", "uc", "Carlos", true)
	drain(t, a)

	s.HandleDisconnect(c)
	frames := drain(t, a)
	lefts := ofType(frames, TypeUserLeft)
	require.Len(t, lefts, 1)
	assert.Equal(t, "uc", lefts[0]["userId"])
	players, spectators := stats(lefts[0])
	assert.Equal(t, float64(1), players)
	assert.Equal(t, float64(1), spectators)
}

func TestChatBroadcastReachesWholeRoomAndOnlyThatRoom(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	b := join(s, "r1", "ub", "Berta", true)
	c := join(s, "r1", "uc", "Carlos", false)
	other := join(s, "r2", "ux", "Xavi", true)
	drain(t, a)
	drain(t, b)
	drain(t, c)
	drain(t, other)

	s.Handle(a, &ChatMessage{RoomID: "r1", UserID: "ua", Username: "Ana", Text: "hola"})

	for _, member := range []*Conn{a, b, c} {
		chats := ofType(drain(t, member), TypeChatMessage)
		require.Len(t, chats, 1)
		assert.Equal(t, "hola", chats[0]["text"])
		assert.Equal(t, "ua", chats[0]["userId"])
		assert.Equal(t, "Ana", chats[0]["username"])
		assert.Equal(t, "msg-1", chats[0]["id"])
		assert.NotEmpty(t, chats[0]["timestamp"])
	}
	assert.Empty(t, drain(t, other))
}

func TestSignalRelayedToSingleTarget(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	b := join(s, "r1", "ub", "Berta", true)
	c := join(s, "r1", "uc", "Carlos", false)
	drain(t, a)
	drain(t, b)
	drain(t, c)

	offer := json.RawMessage(`{"sdp":"v=0","type":"offer"}`)
	s.Handle(a, &Signal{Kind: TypeWebRTCOffer, RoomID: "r1", TargetUserID: "ub", Offer: offer})

	bFrames := drain(t, b)
	require.Len(t, bFrames, 1)
	assert.Equal(t, TypeWebRTCOffer, bFrames[0]["type"])
	assert.Equal(t, "ua", bFrames[0]["fromUserId"])
	assert.Equal(t, "v=0", bFrames[0]["offer"].(map[string]interface{})["sdp"])

	assert.Empty(t, drain(t, a))
	assert.Empty(t, drain(t, c))
}

func TestSignalForUnknownTargetDroppedSilently(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	b := join(s, "r1", "ub", "Berta", true)
	drain(t, a)
	drain(t, b)

	assert.NotPanics(t, func() {
		s.Handle(a, &Signal{Kind: TypeWebRTCOffer, RoomID: "r1", TargetUserID: "nobody"})
	})
	assert.Empty(t, drain(t, a))
	assert.Empty(t, drain(t, b))
}

func TestGameActionBroadcastAndStateBlob(t *testing.T) {
	s := newTestServer()

	var hookRoom, hookUser, hookAction string
	s.OnGameAction = func(roomID, userID, action string, data json.RawMessage) {
		hookRoom, hookUser, hookAction = roomID, userID, action
	}

	a := join(s, "r1", "ua", "Ana", true)
	b := join(s, "r1", "ub", "Berta", true)
	drain(t, a)
	drain(t, b)

	s.Handle(a, &GameAction{RoomID: "r1", Action: "answer", Data: json.RawMessage(`{"letter":"A","correct":true}`)})

	for _, member := range []*Conn{a, b} {
		updates := ofType(drain(t, member), TypeGameUpdate)
		require.Len(t, updates, 1)
		assert.Equal(t, "answer", updates[0]["action"])
		assert.Equal(t, "ua", updates[0]["userId"])
	}

	assert.Equal(t, "r1", hookRoom)
	assert.Equal(t, "ua", hookUser)
	assert.Equal(t, "answer", hookAction)
	assert.NotEmpty(t, s.rooms["r1"].GameState)
}

func TestRoomDeletedWhenLastMemberGoesAndRejoinIsFresh(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	c := join(s, "r1", "uc", "Carlos", false)
	s.Handle(a, &GameAction{RoomID: "r1", Action: "answer", Data: json.RawMessage(`{}`)})

	s.Handle(a, &LeaveRoom{RoomID: "r1", UserID: "ua"})
	s.HandleDisconnect(c)

	_, exists := s.rooms["r1"]
	assert.False(t, exists)
	assert.Empty(t, s.conns)

	fresh := join(s, "r1", "ud", "Diana", true)
	room := s.rooms["r1"]
	require.NotNil(t, room)
	assert.Empty(t, room.GameState)
	assert.Equal(t, RolePlayer, fresh.Role)
	require.Len(t, room.Players, 1)
	assert.Empty(t, room.Spectators)
}

func TestDisconnectIsIdempotent(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	b := join(s, "r1", "ub", "Berta", true)
	drain(t, a)
	drain(t, b)

	s.HandleDisconnect(b)
	assert.NotPanics(t, func() { s.HandleDisconnect(b) })

	lefts := ofType(drain(t, a), TypeUserLeft)
	assert.Len(t, lefts, 1)
}

func TestLeaveThenDisconnectEmitsSingleUserLeft(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	b := join(s, "r1", "ub", "Berta", true)
	drain(t, a)

	s.Handle(b, &LeaveRoom{RoomID: "r1", UserID: "ub"})
	s.HandleDisconnect(b)

	lefts := ofType(drain(t, a), TypeUserLeft)
	require.Len(t, lefts, 1)
	players, spectators := stats(lefts[0])
	assert.Equal(t, float64(1), players)
	assert.Equal(t, float64(0), spectators)
}

func TestLeaveKeepsTransportUsableForRejoin(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	s.Handle(a, &LeaveRoom{RoomID: "r1", UserID: "ua"})
	require.False(t, a.joined())

	s.Handle(a, &JoinRoom{RoomID: "r2", UserID: "ua", Username: "Ana", IsPlayer: true})
	assert.Equal(t, "r2", a.RoomID)
	assert.Equal(t, RolePlayer, a.Role)
	require.NotNil(t, s.rooms["r2"])
}

func TestClosedMemberSkippedDuringBroadcast(t *testing.T) {
	s := newTestServer()

	a := join(s, "r1", "ua", "Ana", true)
	b := join(s, "r1", "ub", "Berta", true)
	drain(t, a)
	drain(t, b)

	// Simulate a transport that died without its disconnect processed yet.
	b.closed = true

	assert.NotPanics(t, func() {
		s.Handle(a, &ChatMessage{RoomID: "r1", Text: "hola"})
	})
	require.Len(t, ofType(drain(t, a), TypeChatMessage), 1)
}

func TestRoomsSnapshot(t *testing.T) {
	s := newTestServer()

	join(s, "r1", "ua", "Ana", true)
	join(s, "r1", "ub", "Berta", false)
	join(s, "r2", "uc", "Carlos", true)

	rooms := s.Rooms()
	require.Len(t, rooms, 2)
	byID := map[string]RoomSummary{}
	for _, r := range rooms {
		byID[r.ID] = r
	}
	assert.Equal(t, 1, byID["r1"].Players)
	assert.Equal(t, 1, byID["r1"].Spectators)
	assert.Equal(t, 1, byID["r2"].Players)
}

func TestDuplicateUserIDLeaveRemovesOwnSeatOnly(t *testing.T) {
	s := newTestServer()

	c1 := join(s, "r1", "u1", "Ana", true)
	c2 := join(s, "r1", "u1", "Ana", true)

	s.Handle(c2, &LeaveRoom{RoomID: "r1", UserID: "u1"})

	room := s.rooms["r1"]
	require.NotNil(t, room)
	require.Len(t, room.Players, 1)
	assert.Same(t, c1, room.Players[0])
	assert.Equal(t, RoomStats{Players: 1, Spectators: 0}, room.stats())

	// The older connection keeps its seat and still receives room traffic.
	drain(t, c1)
	c3 := join(s, "r1", "u3", "Berta", false)
	s.Handle(c3, &ChatMessage{RoomID: "r1", Text: "hola"})

	chats := ofType(drain(t, c1), TypeChatMessage)
	require.Len(t, chats, 1)
	assert.Equal(t, "hola", chats[0]["text"])
}
