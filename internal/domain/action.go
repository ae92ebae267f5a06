package domain

import "time"

// Action is an immutable audit trail entry recording one ticket
// mutation. Entries are never edited or removed, even after the
// referenced ticket is deleted.
type Action struct {
	ID          string
	TicketID    string
	UserID      string
	Description string
	Timestamp   time.Time
}
