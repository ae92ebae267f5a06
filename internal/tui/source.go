package tui

import (
	"context"

	"github.com/updoc-health/updoc/internal/api/dto"
	"github.com/updoc-health/updoc/internal/domain"
)

// Source abstracts the ticket backend for the terminal client.
// [Client] implements it over HTTP; tests substitute an in-memory
// fake. The TUI code is identical in both cases.
type Source interface {
	// Tickets returns the tickets visible to the user, in the
	// server's presentation order (newest first).
	Tickets(ctx context.Context, user dto.User) ([]dto.Ticket, error)

	// Actions returns the audit trail for one ticket. The transport
	// does not guarantee order; callers sort.
	Actions(ctx context.Context, ticketID string) ([]dto.Action, error)

	// Create files a new consultation ticket.
	Create(ctx context.Context, patientID, description, title string) (dto.Ticket, error)

	// UpdateStatus transitions a ticket on behalf of a doctor.
	UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus, userID string) (dto.Ticket, error)

	// Delete removes a ticket on behalf of a doctor.
	Delete(ctx context.Context, ticketID, userID string) error
}
