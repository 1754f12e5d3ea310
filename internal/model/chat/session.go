package chat

import "time"

// Session captures a transient anonymous relay connection. It carries no
// user identity and is never persisted.
type Session struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}
