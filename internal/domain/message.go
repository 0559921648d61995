package domain

// Envelope is the normalized payload for both user and system messages.
type Envelope struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// LogEntry is what a room's message log keeps per chat message.
type LogEntry struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
