package store

import (
	"sync"

	"github.com/updoc-health/updoc/internal/domain"
	apperrors "github.com/updoc-health/updoc/pkg/util"
)

// TicketCollection holds the live set of tickets. It is constructed at
// process start and injected wherever ticket state is needed; there is
// no package-level singleton, so tests can instantiate isolated stores.
//
// Fiber runs handlers concurrently, so every operation takes the
// collection lock. Without it two doctors racing to transition the
// same ticket would silently lose one update.
type TicketCollection struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

// NewTicketCollection creates an empty collection.
func NewTicketCollection() *TicketCollection {
	return &TicketCollection{tickets: make(map[string]domain.Ticket)}
}

// Insert adds a new ticket.
func (c *TicketCollection) Insert(ticket domain.Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickets[ticket.ID] = ticket
}

// Get returns the ticket with the given id.
func (c *TicketCollection) Get(id string) (domain.Ticket, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ticket, ok := c.tickets[id]
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return ticket, nil
}

// Update replaces the stored ticket.
func (c *TicketCollection) Update(ticket domain.Ticket) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tickets[ticket.ID]; !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": ticket.ID})
	}
	c.tickets[ticket.ID] = ticket
	return nil
}

// Mutate applies fn to the ticket and stores the result, all under one
// lock. Two racing mutations of the same ticket serialize here: the
// second fn sees the first one's result and can reject it. An error
// from fn leaves the stored ticket untouched.
func (c *TicketCollection) Mutate(id string, fn func(ticket *domain.Ticket) error) (domain.Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ticket, ok := c.tickets[id]
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	if err := fn(&ticket); err != nil {
		return domain.Ticket{}, err
	}
	c.tickets[id] = ticket
	return ticket, nil
}

// RemoveIf drops the ticket when fn accepts it, under one lock, and
// returns the removed record. Of two racing removals at most one
// succeeds; the loser gets not-found.
func (c *TicketCollection) RemoveIf(id string, fn func(ticket domain.Ticket) error) (domain.Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ticket, ok := c.tickets[id]
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	if err := fn(ticket); err != nil {
		return domain.Ticket{}, err
	}
	delete(c.tickets, id)
	return ticket, nil
}

// Remove drops the ticket from the live collection. Its id becomes
// eligible for not-found responses thereafter; audit entries that
// reference it are unaffected.
func (c *TicketCollection) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tickets[id]; !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	delete(c.tickets, id)
	return nil
}

// List returns a snapshot of all live tickets. Ordering is not
// guaranteed; presentation order is a query-service concern.
func (c *TicketCollection) List() []domain.Ticket {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make([]domain.Ticket, 0, len(c.tickets))
	for _, ticket := range c.tickets {
		snapshot = append(snapshot, ticket)
	}
	return snapshot
}
