package tui

import (
	"context"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/updoc-health/updoc/internal/api/dto"
	"github.com/updoc-health/updoc/internal/domain"
)

// FocusRegion identifies where keyboard input is routed.
type FocusRegion int

const (
	// FocusList means navigation and mutation keys act on the ticket
	// list.
	FocusList FocusRegion = iota
	// FocusCompose means keystrokes go to the new-ticket description
	// field untouched; only submit and cancel are intercepted.
	FocusCompose
)

// ticketsLoadedMsg delivers a list fetch result. seq identifies which
// request produced it so stale responses can be discarded.
type ticketsLoadedMsg struct {
	seq     int
	tickets []dto.Ticket
	err     error
}

// actionsLoadedMsg delivers the audit trail for one ticket.
type actionsLoadedMsg struct {
	ticketID string
	actions  []dto.Action
	err      error
}

// mutationDoneMsg is sent when a status change or delete completes.
// On success the ticket list is re-fetched; there is no optimistic
// local patch.
type mutationDoneMsg struct {
	err error
}

// ticketCreatedMsg is sent when a compose submission completes.
type ticketCreatedMsg struct {
	err error
}

// Model is the top-level bubbletea model for the ticket viewer.
type Model struct {
	source Source
	user   dto.User
	keys   KeyMap
	styles Styles

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Raw tickets from the last accepted fetch, in server order.
	rawTickets []dto.Ticket

	// View-state inputs. view is derived from them after every
	// change; it is never patched in place.
	activeTab  domain.TicketStatus
	page       int
	selectedID string
	view       ViewState

	// Audit trail for the selected ticket.
	actions    []dto.Action
	actionsFor string

	// Compose field for new consultations.
	focus   FocusRegion
	compose textarea.Model

	// fetchSeq is the sequence number of the newest issued list
	// fetch. Responses tagged with an older seq lost the race and are
	// dropped, so a slow stale response can never overwrite a newer
	// one.
	fetchSeq int

	// notice is the inline error message from the last failed
	// operation; cleared on the next successful one.
	notice string

	loading bool
}

// NewModel creates a Model for the authenticated user.
func NewModel(source Source, user dto.User) Model {
	compose := textarea.New()
	compose.Placeholder = "Describe your symptoms..."
	compose.CharLimit = 2000

	return Model{
		source:    source,
		user:      user,
		keys:      DefaultKeyMap,
		styles:    DefaultStyles,
		activeTab: domain.TicketStatusOpen,
		page:      1,
		compose:   compose,
		loading:   true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	source, user := m.source, m.user
	return func() tea.Msg {
		tickets, err := source.Tickets(context.Background(), user)
		return ticketsLoadedMsg{seq: 0, tickets: tickets, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if m.focus == FocusCompose {
			return m.handleComposeKeys(message)
		}
		return m.handleListKeys(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.compose.SetWidth(message.Width - 4)

	case ticketsLoadedMsg:
		return m.handleTicketsLoaded(message)

	case actionsLoadedMsg:
		if message.ticketID != m.selectedID {
			// Selection moved on while the fetch was in flight.
			return m, nil
		}
		if message.err != nil {
			m.notice = message.err.Error()
			return m, nil
		}
		actions := message.actions
		// The transport contract leaves action order unspecified.
		sort.SliceStable(actions, func(i, j int) bool {
			return actions[i].Timestamp.Before(actions[j].Timestamp)
		})
		m.actions = actions
		m.actionsFor = message.ticketID

	case mutationDoneMsg:
		if message.err != nil {
			// Surface the message inline and leave the prior view
			// intact; nothing was changed locally.
			m.notice = message.err.Error()
			return m, nil
		}
		m.notice = ""
		cmd := m.fetchTickets()
		return m, cmd

	case ticketCreatedMsg:
		if message.err != nil {
			m.notice = message.err.Error()
			return m, nil
		}
		m.notice = ""
		m.compose.Reset()
		m.compose.Blur()
		m.focus = FocusList
		cmd := m.fetchTickets()
		return m, cmd
	}
	return m, nil
}

// handleListKeys processes input while the ticket list has focus.
func (m Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(message, m.keys.Up):
		return m.moveSelection(-1)

	case key.Matches(message, m.keys.Down):
		return m.moveSelection(1)

	case key.Matches(message, m.keys.PrevPage):
		return m.switchPage(m.page - 1)

	case key.Matches(message, m.keys.NextPage):
		return m.switchPage(m.page + 1)

	case key.Matches(message, m.keys.NextTab):
		return m.switchTab(NextTab(m.activeTab))

	case key.Matches(message, m.keys.PrevTab):
		return m.switchTab(PrevTab(m.activeTab))

	case key.Matches(message, m.keys.Progress):
		return m.transitionSelected(domain.TicketStatusInProgress, domain.TicketStatusOpen)

	case key.Matches(message, m.keys.Close):
		return m.transitionSelected(domain.TicketStatusClosed,
			domain.TicketStatusOpen, domain.TicketStatusInProgress)

	case key.Matches(message, m.keys.Reopen):
		return m.transitionSelected(domain.TicketStatusOpen,
			domain.TicketStatusInProgress, domain.TicketStatusClosed)

	case key.Matches(message, m.keys.Delete):
		return m.deleteSelected()

	case key.Matches(message, m.keys.Compose):
		m.focus = FocusCompose
		return m, m.compose.Focus()
	}
	return m, nil
}

// handleComposeKeys routes input to the compose field. Keystrokes pass
// through untouched except submit and cancel, so single-letter
// shortcuts never fire while typing a description.
func (m Model) handleComposeKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(message, m.keys.Cancel):
		m.compose.Blur()
		m.focus = FocusList
		return m, nil

	case key.Matches(message, m.keys.Submit):
		return m.submitCompose()
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(message)
	return m, cmd
}

// moveSelection moves the selection within the current page.
func (m Model) moveSelection(delta int) (tea.Model, tea.Cmd) {
	if len(m.view.PageItems) == 0 {
		return m, nil
	}
	index := m.view.SelectedIndex() + delta
	if index < 0 || index >= len(m.view.PageItems) {
		return m, nil
	}
	m.selectedID = m.view.PageItems[index].ID
	m.recompute()
	cmd := m.fetchActionsForSelection()
	return m, cmd
}

// switchPage changes the page when the target is in range. The
// selection always resets to the front of the new page; the previous
// selection cannot belong to it.
func (m Model) switchPage(target int) (tea.Model, tea.Cmd) {
	if target < 1 || target > m.view.TotalPages || target == m.page {
		return m, nil
	}
	m.page = target
	m.selectedID = ""
	m.recompute()
	cmd := m.fetchActionsForSelection()
	return m, cmd
}

// switchTab changes the doctor's status tab and resets the view to the
// front of the new partition. Patients have no tabs.
func (m Model) switchTab(tab domain.TicketStatus) (tea.Model, tea.Cmd) {
	if m.user.Role != domain.RoleDoctor || tab == m.activeTab {
		return m, nil
	}
	m.activeTab = tab
	m.page = 1
	m.selectedID = ""
	m.recompute()
	cmd := m.fetchActionsForSelection()
	return m, cmd
}

// transitionSelected requests a status change for the selected ticket
// when the actor is a doctor and the current status is one of the
// allowed sources.
func (m Model) transitionSelected(target domain.TicketStatus, from ...domain.TicketStatus) (tea.Model, tea.Cmd) {
	if m.user.Role != domain.RoleDoctor {
		return m, nil
	}
	selected, ok := m.view.Selected()
	if !ok {
		return m, nil
	}
	allowed := false
	for _, status := range from {
		if selected.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return m, nil
	}

	source, userID, ticketID := m.source, m.user.ID, selected.ID
	return m, func() tea.Msg {
		_, err := source.UpdateStatus(context.Background(), ticketID, target, userID)
		return mutationDoneMsg{err: err}
	}
}

// deleteSelected requests deletion of the selected ticket.
func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	if m.user.Role != domain.RoleDoctor {
		return m, nil
	}
	selected, ok := m.view.Selected()
	if !ok {
		return m, nil
	}

	source, userID, ticketID := m.source, m.user.ID, selected.ID
	return m, func() tea.Msg {
		return mutationDoneMsg{err: source.Delete(context.Background(), ticketID, userID)}
	}
}

// submitCompose files the compose field as a new ticket.
func (m Model) submitCompose() (tea.Model, tea.Cmd) {
	description := m.compose.Value()
	if description == "" {
		m.notice = "description required"
		return m, nil
	}

	source, patientID := m.source, m.user.ID
	return m, func() tea.Msg {
		_, err := source.Create(context.Background(), patientID, description, "")
		return ticketCreatedMsg{err: err}
	}
}

// handleTicketsLoaded applies an accepted fetch result and re-derives
// the view.
func (m Model) handleTicketsLoaded(message ticketsLoadedMsg) (tea.Model, tea.Cmd) {
	if message.seq < m.fetchSeq {
		// A newer request was issued after this one; its response is
		// authoritative. Dropping the stale body keeps the view from
		// moving backward in time.
		return m, nil
	}
	m.loading = false
	if message.err != nil {
		m.notice = message.err.Error()
		return m, nil
	}
	m.rawTickets = message.tickets
	m.recompute()
	cmd := m.fetchActionsForSelection()
	return m, cmd
}

// recompute re-derives the view from the current inputs and folds the
// clamped page and resynchronized selection back into them.
func (m *Model) recompute() {
	m.view = DeriveViewState(m.rawTickets, m.user.Role, m.activeTab, m.page, m.selectedID)
	m.page = m.view.Page
	m.selectedID = m.view.SelectedID
}

// fetchTickets issues a list fetch tagged with the next sequence
// number.
func (m *Model) fetchTickets() tea.Cmd {
	m.fetchSeq++
	seq, source, user := m.fetchSeq, m.source, m.user
	return func() tea.Msg {
		tickets, err := source.Tickets(context.Background(), user)
		return ticketsLoadedMsg{seq: seq, tickets: tickets, err: err}
	}
}

// fetchActionsForSelection loads the audit trail for the current
// selection, unless it is already loaded or nothing is selected.
func (m *Model) fetchActionsForSelection() tea.Cmd {
	if m.selectedID == "" {
		m.actions = nil
		m.actionsFor = ""
		return nil
	}
	if m.actionsFor == m.selectedID {
		return nil
	}
	source, ticketID := m.source, m.selectedID
	return func() tea.Msg {
		actions, err := source.Actions(context.Background(), ticketID)
		return actionsLoadedMsg{ticketID: ticketID, actions: actions, err: err}
	}
}
