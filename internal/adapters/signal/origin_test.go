package signal

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOriginPolicy(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{name: "wildcard", allowed: []string{"*"}, origin: "https://anything.test", want: true},
		{name: "wildcard without header", allowed: []string{"*"}, origin: "", want: true},
		{name: "exact match", allowed: []string{"https://chat.example.com"}, origin: "https://chat.example.com", want: true},
		{name: "case insensitive", allowed: []string{"HTTPS://Chat.Example.com"}, origin: "https://chat.example.COM", want: true},
		{name: "other host", allowed: []string{"https://chat.example.com"}, origin: "https://evil.test", want: false},
		{name: "missing header", allowed: []string{"https://chat.example.com"}, origin: "", want: false},
		{name: "invalid entries ignored", allowed: []string{"chat.example.com", " "}, origin: "https://chat.example.com", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			require.Equal(t, tt.want, newOriginPolicy(tt.allowed).check(r))
		})
	}
}
