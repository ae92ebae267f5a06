package service

import (
	"sort"
	"strings"

	"github.com/updoc-health/updoc/internal/domain"
	"github.com/updoc-health/updoc/internal/store"
)

// UnknownSubmitter is the sentinel shown when a ticket's submitter can
// no longer be resolved.
const UnknownSubmitter = "Unknown"

// EnrichedTicket is a ticket joined with its submitter's username for
// display.
type EnrichedTicket struct {
	domain.Ticket
	PatientName string
}

// TicketQueryService is the read path over the ticket collection:
// role-scoped filtering plus submitter enrichment.
type TicketQueryService struct {
	tickets *store.TicketCollection
	users   *store.UserDirectory
}

// NewTicketQueryService constructs the service.
func NewTicketQueryService(tickets *store.TicketCollection, users *store.UserDirectory) *TicketQueryService {
	return &TicketQueryService{tickets: tickets, users: users}
}

// ListFor returns tickets visible to the given user: patients see only
// their own submissions, doctors see everything.
func (q *TicketQueryService) ListFor(user domain.User) []EnrichedTicket {
	var scoped []domain.Ticket
	for _, ticket := range q.tickets.List() {
		if user.Role == domain.RolePatient && ticket.PatientID != user.ID {
			continue
		}
		scoped = append(scoped, ticket)
	}
	return q.enrich(scoped)
}

// ListAll returns every live ticket, enriched and sorted. Role scoping
// for anonymous transport reads is the caller's concern.
func (q *TicketQueryService) ListAll() []EnrichedTicket {
	return q.enrich(q.tickets.List())
}

// enrich joins submitter usernames and applies the presentation order:
// newest first by CreatedAt, id descending as a deterministic
// tie-break.
func (q *TicketQueryService) enrich(tickets []domain.Ticket) []EnrichedTicket {
	result := make([]EnrichedTicket, 0, len(tickets))
	for _, ticket := range tickets {
		name := UnknownSubmitter
		if submitter, err := q.users.GetByID(ticket.PatientID); err == nil {
			name = submitter.Username
		}
		result = append(result, EnrichedTicket{Ticket: ticket, PatientName: name})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return strings.Compare(result[i].ID, result[j].ID) > 0
	})
	return result
}
