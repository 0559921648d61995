package core

import "github.com/dkeye/Relay/internal/domain"

// Outbound event types.
const (
	EventMessage   = "message"
	EventRoomUsers = "roomUsers"
	EventWhoAmI    = "whoami"
	EventPong      = "pong"
)

type MessageEvent struct {
	Type string `json:"type"`
	domain.Envelope
}

func NewMessageEvent(env domain.Envelope) MessageEvent {
	return MessageEvent{Type: EventMessage, Envelope: env}
}

// RoomUsersEvent carries a room roster, recomputed for every send.
type RoomUsersEvent struct {
	Type  string          `json:"type"`
	Room  domain.RoomName `json:"room"`
	Users []string        `json:"users"`
}

func NewRoomUsersEvent(room domain.RoomName, users []string) RoomUsersEvent {
	if users == nil {
		users = []string{}
	}
	return RoomUsersEvent{Type: EventRoomUsers, Room: room, Users: users}
}

type WhoAmIEvent struct {
	Type     string          `json:"type"`
	Username string          `json:"username,omitempty"`
	Room     domain.RoomName `json:"room,omitempty"`
}

type PongEvent struct {
	Type string `json:"type"`
}
