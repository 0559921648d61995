package app

import (
	"sync"
	"time"

	"github.com/dkeye/Relay/internal/domain"
)

const (
	DefaultBotName         = "Relay Bot"
	DefaultTimestampLayout = "15:04"
)

// Formatter builds message envelopes. Timestamps never go backwards
// within one Formatter, even if the wall clock does.
type Formatter struct {
	botName string
	layout  string
	now     func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewFormatter(botName, layout string) *Formatter {
	if botName == "" {
		botName = DefaultBotName
	}
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	return &Formatter{botName: botName, layout: layout, now: time.Now}
}

// WithClock swaps the time source. For tests.
func (f *Formatter) WithClock(now func() time.Time) *Formatter {
	f.now = now
	return f
}

func (f *Formatter) BotName() string { return f.botName }

func (f *Formatter) Format(sender, text string) domain.Envelope {
	f.mu.Lock()
	t := f.now()
	if t.Before(f.last) {
		t = f.last
	}
	f.last = t
	f.mu.Unlock()

	return domain.Envelope{
		Sender:    sender,
		Text:      text,
		Timestamp: t.Format(f.layout),
	}
}

// System formats a message sent under the bot label.
func (f *Formatter) System(text string) domain.Envelope {
	return f.Format(f.botName, text)
}
