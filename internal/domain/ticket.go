package domain

import "time"

// TicketStatus enumerates lifecycle states for consultation tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether s is one of the three defined statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// allowedTransitions maps each status to the statuses reachable from
// it. Delete is not a transition; it is valid from any state.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusClosed, TicketStatusOpen},
	TicketStatusClosed:     {TicketStatusOpen},
}

// CanTransition reports whether a ticket may move between two statuses.
// No-op transitions (from == to) are never allowed.
func CanTransition(from, to TicketStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Ticket is the aggregate for patient consultation requests.
type Ticket struct {
	ID          string
	PatientID   string
	DoctorID    *string
	Title       string
	Description string
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
