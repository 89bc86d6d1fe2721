package contract

type EventKind string

const (
	KindCommand EventKind = "command"
	KindText    EventKind = "text"
	KindButton  EventKind = "button"
)

// Event is one inbound message from the transport, already stripped of any
// transport-specific envelope.
type Event struct {
	UserID  int64     `json:"user_id"`
	Kind    EventKind `json:"kind"`
	Command string    `json:"command,omitempty"` // e.g. "/delete", argument excluded
	Payload string    `json:"payload,omitempty"` // argument text for commands, message text otherwise
}

// Reply is what the core hands back to the transport. Rendering (keyboards,
// markup) is the transport's business.
type Reply struct {
	Text    string   `json:"text"`
	Choices []string `json:"choices,omitempty"`
}
