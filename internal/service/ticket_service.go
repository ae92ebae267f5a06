package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/updoc-health/updoc/internal/domain"
	"github.com/updoc-health/updoc/internal/events"
	"github.com/updoc-health/updoc/internal/repository"
	"github.com/updoc-health/updoc/internal/store"
	apperrors "github.com/updoc-health/updoc/pkg/util"
)

// TicketService coordinates ticket mutations. Every successful
// mutation appends exactly one audit action whose timestamp equals the
// ticket's resulting UpdatedAt; failed operations append nothing.
type TicketService struct {
	tickets    *store.TicketCollection
	audit      *store.AuditLog
	users      *store.UserDirectory
	archive    repository.ActionArchive
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	Tickets    *store.TicketCollection
	Audit      *store.AuditLog
	Users      *store.UserDirectory
	Archive    repository.ActionArchive
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.Tickets,
		audit:      deps.Audit,
		users:      deps.Users,
		archive:    deps.Archive,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create opens a new ticket for a patient. Doctors may also act as
// submitters; the creator is recorded as the patient either way.
func (s *TicketService) Create(ctx context.Context, patientID, description, title string) (*domain.Ticket, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if _, err := s.users.GetByID(patientID); err != nil {
		return nil, apperrors.NewValidationError("unknown patient", map[string]any{"patientId": patientID})
	}

	now := time.Now()
	ticket := domain.Ticket{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tickets.Insert(ticket)
	s.recordAction(ctx, ticket.ID, patientID, "Ticket created", now)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  patientID,
		Payload: events.TicketCreatedPayload{
			PatientID:   patientID,
			Title:       ticket.Title,
			Description: ticket.Description,
		},
	})
	return &ticket, nil
}

// UpdateStatus transitions a ticket. Status mutation is
// doctor-exclusive; no-ops and undefined transitions are rejected
// without touching the audit log. Validation and write happen inside
// one store mutation, so of two racing doctors applying the same
// transition exactly one succeeds and the other gets the
// invalid-transition rejection against the fresh status.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, newStatus domain.TicketStatus, actingUserID string) (*domain.Ticket, error) {
	now := time.Now()
	var oldStatus domain.TicketStatus
	ticket, err := s.tickets.Mutate(ticketID, func(ticket *domain.Ticket) error {
		if err := s.requireDoctor(actingUserID); err != nil {
			return err
		}
		if !newStatus.Valid() {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
		}
		if newStatus == ticket.Status {
			return apperrors.NewInvalidTransition(
				fmt.Sprintf("ticket already %s", newStatus), nil)
		}
		if !domain.CanTransition(ticket.Status, newStatus) {
			return apperrors.NewInvalidTransition(
				fmt.Sprintf("cannot move ticket from %s to %s", ticket.Status, newStatus), nil)
		}
		oldStatus = ticket.Status
		if oldStatus == domain.TicketStatusOpen {
			// The doctor acting on a fresh ticket claims it.
			ticket.DoctorID = &actingUserID
		}
		ticket.Status = newStatus
		ticket.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recordAction(ctx, ticket.ID, actingUserID,
		fmt.Sprintf("Ticket status updated to %s", newStatus), now)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actingUserID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return &ticket, nil
}

// Delete removes a ticket from the live collection. Valid from any
// status. The final "Ticket deleted" action survives in the audit log.
// Check and removal share one store operation, so racing deletes of
// the same ticket yield one success and one not-found, and one audit
// entry.
func (s *TicketService) Delete(ctx context.Context, ticketID, actingUserID string) error {
	ticket, err := s.tickets.RemoveIf(ticketID, func(domain.Ticket) error {
		return s.requireDoctor(actingUserID)
	})
	if err != nil {
		return err
	}
	s.recordAction(ctx, ticketID, actingUserID, "Ticket deleted", time.Now())
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
		ActorID:  actingUserID,
		Payload:  events.TicketDeletedPayload{LastStatus: ticket.Status},
	})
	return nil
}

// Actions returns the audit trail for a ticket, oldest first. Deleted
// tickets keep their full history.
func (s *TicketService) Actions(ticketID string) []domain.Action {
	return s.audit.ForTicket(ticketID)
}

func (s *TicketService) requireDoctor(userID string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleDoctor {
		return apperrors.NewForbidden("doctor role required")
	}
	return nil
}

// recordAction appends the audit entry for a completed mutation. The
// in-memory log is the system of record; the archive mirror is
// best-effort and must never fail the mutation.
func (s *TicketService) recordAction(ctx context.Context, ticketID, userID, description string, at time.Time) {
	action := domain.Action{
		ID:          uuid.NewString(),
		TicketID:    ticketID,
		UserID:      userID,
		Description: description,
		Timestamp:   at,
	}
	s.audit.Append(action)
	if s.archive != nil {
		if err := s.archive.Append(ctx, action); err != nil {
			s.logger.Warn("archive audit action",
				zap.String("ticket_id", ticketID),
				zap.Error(err))
		}
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
