package domain

import "time"

// Turn is one message in a session's history.
type Turn struct {
	TurnID    string    `json:"turn_id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the durable, token-addressed conversation state.
type Session struct {
	Token        string    `json:"token"`
	CustomerID   string    `json:"customer_id"`
	LastCategory Category  `json:"last_category,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Turns        []Turn    `json:"turns,omitempty"`
}

// RecentTurns returns a read-only view of at most the last n turns in
// chronological order.
func (s *Session) RecentTurns(n int) []Turn {
	if n <= 0 || len(s.Turns) == 0 {
		return nil
	}
	if len(s.Turns) <= n {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-n:]
}
