package store

import (
	"sort"
	"sync"

	"github.com/updoc-health/updoc/internal/domain"
)

// AuditLog is the append-only store of Action records. Entries are
// never edited or removed, even when their referenced ticket is
// deleted.
type AuditLog struct {
	mu      sync.RWMutex
	actions []domain.Action
}

// NewAuditLog creates an empty log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Append records an action. It never fails for well-formed input; the
// referenced ticket may already have been removed from the live
// collection.
func (l *AuditLog) Append(action domain.Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = append(l.actions, action)
}

// ForTicket returns the entries for a ticket sorted by timestamp
// ascending, ties broken by insertion order. Unknown tickets yield an
// empty slice, not an error.
func (l *AuditLog) ForTicket(ticketID string) []domain.Action {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var result []domain.Action
	for _, action := range l.actions {
		if action.TicketID == ticketID {
			result = append(result, action)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result
}

// Len returns the total number of recorded actions.
func (l *AuditLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.actions)
}
