// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
)

const (
	MaxUsernameLen = 36
	MaxRoomNameLen = 36
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrRoomEmpty       = errors.New("room name empty")
	ErrRoomTooLong     = errors.New("room name too long")
)

// ValidateUsername reports why a user-supplied name can't be used, if it can't.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}

func ValidateRoomName(name RoomName) error {
	if strings.TrimSpace(string(name)) == "" {
		return ErrRoomEmpty
	}
	if len(name) > MaxRoomNameLen {
		return ErrRoomTooLong
	}
	return nil
}
