package tui

import (
	"github.com/updoc-health/updoc/internal/api/dto"
	"github.com/updoc-health/updoc/internal/domain"
)

// PageSize is the fixed number of tickets per page.
const PageSize = 5

// ViewState is the derived presentation state over the raw ticket
// collection: status-tab filter, pagination, and selection. It is
// recomputed from scratch whenever the collection, tab, or page
// changes; nothing is patched incrementally.
type ViewState struct {
	// Filtered is the tab-scoped ticket list (all tickets for
	// patients, one status for doctors).
	Filtered []dto.Ticket

	// Page is the 1-indexed current page, clamped into
	// [1, TotalPages].
	Page int

	// TotalPages is ceil(len(Filtered) / PageSize), minimum 1.
	TotalPages int

	// PageItems is the slice of Filtered shown on the current page.
	PageItems []dto.Ticket

	// SelectedID is the selected ticket's id, or empty when the page
	// is empty. It always names a ticket present in PageItems.
	SelectedID string
}

// DeriveViewState recomputes the view. Doctors see the raw collection
// partitioned by the active tab; patients see all of their tickets
// regardless of tab. The previous selection survives recomputation
// when its ticket is still on the resulting page; otherwise selection
// falls to the first item, or to none on an empty page.
func DeriveViewState(raw []dto.Ticket, role domain.Role, activeTab domain.TicketStatus, page int, selectedID string) ViewState {
	var filtered []dto.Ticket
	if role == domain.RoleDoctor {
		for _, ticket := range raw {
			if ticket.Status == activeTab {
				filtered = append(filtered, ticket)
			}
		}
	} else {
		filtered = raw
	}

	totalPages := (len(filtered) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	var pageItems []dto.Ticket
	if start < len(filtered) {
		pageItems = filtered[start:end]
	}

	selected := ""
	for _, ticket := range pageItems {
		if ticket.ID == selectedID {
			selected = selectedID
			break
		}
	}
	if selected == "" && len(pageItems) > 0 {
		selected = pageItems[0].ID
	}

	return ViewState{
		Filtered:   filtered,
		Page:       page,
		TotalPages: totalPages,
		PageItems:  pageItems,
		SelectedID: selected,
	}
}

// SelectedIndex returns the position of the selection within
// PageItems, or -1 when nothing is selected.
func (v ViewState) SelectedIndex() int {
	for index, ticket := range v.PageItems {
		if ticket.ID == v.SelectedID {
			return index
		}
	}
	return -1
}

// Selected returns the selected ticket, if any.
func (v ViewState) Selected() (dto.Ticket, bool) {
	index := v.SelectedIndex()
	if index < 0 {
		return dto.Ticket{}, false
	}
	return v.PageItems[index], true
}

// NextTab cycles the doctor's status tab forward
// (open → in-progress → closed → open).
func NextTab(tab domain.TicketStatus) domain.TicketStatus {
	switch tab {
	case domain.TicketStatusOpen:
		return domain.TicketStatusInProgress
	case domain.TicketStatusInProgress:
		return domain.TicketStatusClosed
	default:
		return domain.TicketStatusOpen
	}
}

// PrevTab cycles the doctor's status tab backward.
func PrevTab(tab domain.TicketStatus) domain.TicketStatus {
	switch tab {
	case domain.TicketStatusOpen:
		return domain.TicketStatusClosed
	case domain.TicketStatusClosed:
		return domain.TicketStatusInProgress
	default:
		return domain.TicketStatusOpen
	}
}
