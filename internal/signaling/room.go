// internal/signaling/room.go
package signaling

import "encoding/json"

// MaxPlayers is the hard cap on interactive seats per room. Join requests
// beyond it are downgraded to spectator rather than rejected.
const MaxPlayers = 2

// Room groups the connections collaborating in one game session. Rooms are
// created implicitly on first join and removed as soon as the last member
// leaves; GameState is opaque to the coordination layer and only ever
// replaced wholesale by relayed game actions. Access is guarded by the
// owning Server's mutex.
type Room struct {
	ID         string
	Players    []*Conn
	Spectators []*Conn
	GameState  json.RawMessage
}

func newRoom(id string) *Room {
	return &Room{ID: id}
}

// add seats c as a player when requested and a seat is free, otherwise as a
// spectator, and returns the role actually assigned.
func (r *Room) add(c *Conn, asPlayer bool) Role {
	if asPlayer && len(r.Players) < MaxPlayers {
		r.Players = append(r.Players, c)
		return RolePlayer
	}
	r.Spectators = append(r.Spectators, c)
	return RoleSpectator
}

// remove drops the given connection from whichever list holds it and reports
// whether anything was removed. Matching is by connection identity, not user
// id, so two connections sharing a user id never evict each other's seat.
func (r *Room) remove(c *Conn) bool {
	for i, p := range r.Players {
		if p == c {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	for i, s := range r.Spectators {
		if s == c {
			r.Spectators = append(r.Spectators[:i], r.Spectators[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) empty() bool {
	return len(r.Players) == 0 && len(r.Spectators) == 0
}

// members returns players then spectators; broadcast order across members is
// not significant.
func (r *Room) members() []*Conn {
	out := make([]*Conn, 0, len(r.Players)+len(r.Spectators))
	out = append(out, r.Players...)
	out = append(out, r.Spectators...)
	return out
}

func (r *Room) stats() RoomStats {
	return RoomStats{Players: len(r.Players), Spectators: len(r.Spectators)}
}

// roster snapshots the current membership for a room-state payload.
func (r *Room) roster() RoomInfo {
	info := RoomInfo{
		ID:         r.ID,
		Players:    make([]MemberInfo, 0, len(r.Players)),
		Spectators: make([]MemberInfo, 0, len(r.Spectators)),
	}
	for _, p := range r.Players {
		info.Players = append(info.Players, MemberInfo{ID: p.UserID, Username: p.Username})
	}
	for _, s := range r.Spectators {
		info.Spectators = append(info.Spectators, MemberInfo{ID: s.UserID, Username: s.Username})
	}
	return info
}
