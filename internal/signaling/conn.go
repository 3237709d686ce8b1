// internal/signaling/conn.go
package signaling

// Role distinguishes interactive members from view-only ones.
type Role string

const (
	RolePlayer    Role = "player"
	RoleSpectator Role = "spectator"
)

const outboundBuffer = 16

// Conn is one attached client. Identity fields are empty until the client's
// join-room message is handled; all fields, including closed, are guarded by
// the owning Server's mutex. The transport layer owns the read side and
// drains Outbound from its write pump.
type Conn struct {
	UserID   string
	Username string
	RoomID   string
	Role     Role

	send   chan []byte
	closed bool
}

// NewConn allocates a connection handle for a freshly accepted transport.
func NewConn() *Conn {
	return &Conn{send: make(chan []byte, outboundBuffer)}
}

// Outbound exposes the serialized frames queued for this connection.
// The channel is closed when the server processes the disconnect.
func (c *Conn) Outbound() <-chan []byte {
	return c.send
}

// push queues a frame without blocking. It reports false when the connection
// is closed or its buffer is full; callers treat both as a skipped delivery.
// Must be called with the server mutex held, which serializes push against
// the close in Server.HandleDisconnect.
func (c *Conn) push(data []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// joined reports whether the connection currently belongs to a room.
func (c *Conn) joined() bool {
	return c.RoomID != ""
}
