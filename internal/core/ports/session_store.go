package ports

import "context"

// Session is the conversation state of one chat: the active wizard step and
// the values collected so far. The zero Session is idle.
type Session struct {
	Mode   string            `json:"mode"`
	Buffer map[string]string `json:"buffer,omitempty"`
}

// SessionStore keeps sessions by chat id. Implementations must be safe for
// concurrent use.
type SessionStore interface {
	// Get returns the session of chatID, or an idle session when none is stored.
	Get(ctx context.Context, chatID int64) (Session, error)
	Save(ctx context.Context, chatID int64, s Session) error
	Clear(ctx context.Context, chatID int64) error
}
