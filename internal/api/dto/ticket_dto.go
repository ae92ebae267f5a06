package dto

import (
	"time"

	"github.com/updoc-health/updoc/internal/domain"
	"github.com/updoc-health/updoc/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	PatientID   string `json:"patientId"`
	Description string `json:"description"`
	Title       string `json:"title,omitempty"`
}

// UpdateTicketRequest payload for status transitions.
type UpdateTicketRequest struct {
	Status domain.TicketStatus `json:"status"`
	UserID string              `json:"userId"`
}

// Ticket response.
type Ticket struct {
	ID          string              `json:"id"`
	PatientID   string              `json:"patientId"`
	DoctorID    *string             `json:"doctorId,omitempty"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description"`
	Status      domain.TicketStatus `json:"status"`
	PatientName string              `json:"patientName,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// Action response.
type Action struct {
	ID          string    `json:"id"`
	TicketID    string    `json:"ticketId"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// MessageResponse wraps a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// FromTicket maps a domain ticket onto the wire shape.
func FromTicket(ticket *domain.Ticket) Ticket {
	return Ticket{
		ID:          ticket.ID,
		PatientID:   ticket.PatientID,
		DoctorID:    ticket.DoctorID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

// FromEnrichedTicket maps a query-service ticket, including the
// submitter's display name.
func FromEnrichedTicket(ticket service.EnrichedTicket) Ticket {
	wire := FromTicket(&ticket.Ticket)
	wire.PatientName = ticket.PatientName
	return wire
}

// FromAction maps a domain action onto the wire shape.
func FromAction(action domain.Action) Action {
	return Action{
		ID:          action.ID,
		TicketID:    action.TicketID,
		UserID:      action.UserID,
		Description: action.Description,
		Timestamp:   action.Timestamp,
	}
}
