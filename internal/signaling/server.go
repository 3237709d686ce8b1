// internal/signaling/server.go
package signaling

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Server owns the room store and the connection registry. One mutex guards
// both, so no two inbound-message handlers ever run concurrently against the
// shared state; the transport layer only yields at network I/O.
//
// The registry is the source of truth for transport handles; the room store
// is the source of truth for membership. Both index the same *Conn, so join,
// leave, and disconnect keep them consistent by construction.
type Server struct {
	log *logrus.Logger

	mu    sync.Mutex
	rooms map[string]*Room
	conns map[string]*Conn

	// OnGameAction, when set, observes every relayed game action after it has
	// been broadcast. Used to feed the history queue; must not block.
	OnGameAction func(roomID, userID, action string, data json.RawMessage)

	now   func() time.Time
	newID func() string
}

// NewServer constructs the coordination service. All state is process-local;
// nothing survives a restart.
func NewServer(logger *logrus.Logger) *Server {
	return &Server{
		log:   logger,
		rooms: make(map[string]*Room),
		conns: make(map[string]*Conn),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Handle dispatches one decoded inbound message for the given connection.
// Messages from a single connection arrive here in order; interleaving across
// connections is serialized by the server mutex.
func (s *Server) Handle(c *Conn, msg Inbound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch m := msg.(type) {
	case *JoinRoom:
		s.handleJoin(c, m)
	case *LeaveRoom:
		s.handleLeave(c)
	case *ChatMessage:
		s.handleChat(c, m)
	case *Signal:
		s.handleSignal(c, m)
	case *GameAction:
		s.handleGameAction(c, m)
	}
}

// HandleDisconnect is the implicit leave-room driven by transport closure.
// It is idempotent: a connection that already left (or never joined) is
// removed from nothing and no duplicate user-left is emitted. The outbound
// channel is closed here, which stops the connection's write pump.
func (s *Server) HandleDisconnect(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(c)
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (s *Server) handleJoin(c *Conn, m *JoinRoom) {
	if c.joined() {
		s.log.Warnf("signaling: user %s sent join-room while already in room %s, ignoring", c.UserID, c.RoomID)
		return
	}

	c.UserID = m.UserID
	c.Username = m.Username

	room, ok := s.rooms[m.RoomID]
	if !ok {
		room = newRoom(m.RoomID)
		s.rooms[m.RoomID] = room
		s.log.Infof("signaling: room %s created", m.RoomID)
	}

	c.Role = room.add(c, m.IsPlayer)
	c.RoomID = m.RoomID
	s.conns[m.UserID] = c

	s.log.Infof("signaling: user %s (%s) joined room %s as %s", m.UserID, m.Username, m.RoomID, c.Role)

	joined := UserJoined{Type: TypeUserJoined, RoomStats: room.stats()}
	joined.User.ID = m.UserID
	joined.User.Username = m.Username
	joined.User.IsPlayer = c.Role == RolePlayer
	s.broadcast(room, joined)

	s.send(c, RoomState{Type: TypeRoomState, Room: room.roster()})
}

// handleLeave removes the connection from its room but keeps the transport
// open, so the same connection may join another room afterwards.
func (s *Server) handleLeave(c *Conn) {
	s.removeLocked(c)
}

func (s *Server) handleChat(c *Conn, m *ChatMessage) {
	if !c.joined() {
		s.log.Warnf("signaling: chat-message from unjoined connection, ignoring")
		return
	}
	room := s.rooms[c.RoomID]
	if room == nil {
		return
	}
	s.broadcast(room, ChatEvent{
		Type:      TypeChatMessage,
		ID:        s.newID(),
		UserID:    c.UserID,
		Username:  c.Username,
		Text:      m.Text,
		Timestamp: s.now().UTC(),
	})
}

// handleSignal forwards a negotiation payload to exactly one target. An
// unknown or closed target drops the message with no feedback to the sender.
func (s *Server) handleSignal(c *Conn, m *Signal) {
	target, ok := s.conns[m.TargetUserID]
	if !ok {
		s.log.Debugf("signaling: %s for unknown target %s dropped", m.Kind, m.TargetUserID)
		return
	}
	s.send(target, SignalEvent{
		Type:       m.Kind,
		Offer:      m.Offer,
		Answer:     m.Answer,
		Candidate:  m.Candidate,
		FromUserID: c.UserID,
	})
}

func (s *Server) handleGameAction(c *Conn, m *GameAction) {
	if !c.joined() {
		s.log.Warnf("signaling: game-action from unjoined connection, ignoring")
		return
	}
	room := s.rooms[c.RoomID]
	if room == nil {
		return
	}

	update := GameUpdate{Type: TypeGameUpdate, Action: m.Action, Data: m.Data, UserID: c.UserID}
	data, err := json.Marshal(update)
	if err != nil {
		s.log.Errorf("signaling: failed to marshal game-update: %v", err)
		return
	}
	room.GameState = data
	s.deliver(room, data)

	if s.OnGameAction != nil {
		s.OnGameAction(room.ID, c.UserID, m.Action, m.Data)
	}
}

// removeLocked takes the connection out of both indexes. Assumes the server
// mutex is held. Safe to call for a connection that never joined or already
// left. When the room empties it is deleted with no user-left broadcast,
// since nobody is left to receive one.
func (s *Server) removeLocked(c *Conn) {
	if !c.joined() {
		return
	}

	roomID, userID := c.RoomID, c.UserID
	c.RoomID = ""
	c.Role = ""

	if cur, ok := s.conns[userID]; ok && cur == c {
		delete(s.conns, userID)
	}

	room := s.rooms[roomID]
	if room == nil || !room.remove(c) {
		return
	}

	s.log.Infof("signaling: user %s left room %s", userID, roomID)

	if room.empty() {
		delete(s.rooms, roomID)
		s.log.Infof("signaling: room %s removed", roomID)
		return
	}
	s.broadcast(room, UserLeft{Type: TypeUserLeft, UserID: userID, RoomStats: room.stats()})
}

// broadcast fans the message out to every open member of the room, players
// then spectators. Delivery is best-effort: members whose transport is closed
// or whose buffer is full are skipped and reaped by their own disconnect.
func (s *Server) broadcast(room *Room, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Errorf("signaling: failed to marshal broadcast: %v", err)
		return
	}
	s.deliver(room, data)
}

func (s *Server) deliver(room *Room, data []byte) {
	for _, member := range room.members() {
		if !member.push(data) {
			s.log.Debugf("signaling: skipped frame for user %s in room %s", member.UserID, room.ID)
		}
	}
}

func (s *Server) send(c *Conn, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Errorf("signaling: failed to marshal message: %v", err)
		return
	}
	if !c.push(data) {
		s.log.Debugf("signaling: skipped frame for user %s", c.UserID)
	}
}

// RoomSummary is the listing form of a room, for the HTTP rooms endpoint.
type RoomSummary struct {
	ID string `json:"id"`
	RoomStats
}

// Rooms snapshots the active rooms for listing or debugging.
func (s *Server) Rooms() []RoomSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RoomSummary, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, RoomSummary{ID: r.ID, RoomStats: r.stats()})
	}
	return out
}
