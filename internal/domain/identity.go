package domain

// SessionID identifies one live connection. Assigned by the transport.
type SessionID string

// Identity binds a connection to the user name and room it joined with.
// Values are replaced, never mutated.
type Identity struct {
	SessionID SessionID `json:"-"`
	Username  string    `json:"username"`
	Room      RoomName  `json:"room"`
}
