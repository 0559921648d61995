package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatter_Format(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 10, 16, 9, 5, 0, 0, time.UTC)
	f := NewFormatter("", "").WithClock(func() time.Time { return at })

	env := f.Format("alice", "hello")

	req.Equal("alice", env.Sender)
	req.Equal("hello", env.Text)
	req.Equal("09:05", env.Timestamp)
	req.Equal(DefaultBotName, f.System("x").Sender)
}

func TestFormatter_TimestampNeverGoesBack(t *testing.T) {
	req := require.New(t)
	times := []time.Time{
		time.Date(2026, 1, 1, 10, 30, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 10, 29, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 10, 31, 0, 0, time.UTC),
	}
	i := 0
	f := NewFormatter("Bot", time.RFC3339).WithClock(func() time.Time {
		t := times[i]
		i++
		return t
	})

	a := f.Format("u", "1").Timestamp
	b := f.Format("u", "2").Timestamp
	c := f.Format("u", "3").Timestamp

	req.Equal(a, b)
	req.LessOrEqual(b, c)
	req.Equal("2026-01-01T10:31:00Z", c)
}
