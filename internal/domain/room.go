package domain

type RoomName string

// Room is a catalog entry. Names are assumed unique; nothing enforces it.
type Room struct {
	Name  RoomName `json:"name"`
	Owner string   `json:"owner"`
}
