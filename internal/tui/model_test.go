package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/updoc-health/updoc/internal/api/dto"
	"github.com/updoc-health/updoc/internal/domain"
)

// fakeSource is an in-memory Source that records mutation calls.
type fakeSource struct {
	tickets []dto.Ticket
	actions map[string][]dto.Action

	updates []string
	deletes []string
	creates []string

	err error
}

func (f *fakeSource) Tickets(context.Context, dto.User) ([]dto.Ticket, error) {
	return f.tickets, f.err
}

func (f *fakeSource) Actions(_ context.Context, ticketID string) ([]dto.Action, error) {
	return f.actions[ticketID], nil
}

func (f *fakeSource) Create(_ context.Context, _, description, _ string) (dto.Ticket, error) {
	if f.err != nil {
		return dto.Ticket{}, f.err
	}
	f.creates = append(f.creates, description)
	return dto.Ticket{ID: "new", Description: description}, nil
}

func (f *fakeSource) UpdateStatus(_ context.Context, ticketID string, status domain.TicketStatus, _ string) (dto.Ticket, error) {
	if f.err != nil {
		return dto.Ticket{}, f.err
	}
	f.updates = append(f.updates, ticketID+":"+string(status))
	return dto.Ticket{ID: ticketID, Status: status}, nil
}

func (f *fakeSource) Delete(_ context.Context, ticketID, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, ticketID)
	return nil
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// loadedModel builds a model with the fake's tickets already applied.
func loadedModel(t *testing.T, source *fakeSource, role domain.Role) Model {
	t.Helper()
	m := NewModel(source, dto.User{ID: "u1", Username: "tester", Role: role})
	updated, _ := m.Update(ticketsLoadedMsg{seq: 0, tickets: source.tickets})
	return updated.(Model)
}

// drain runs a command chain to completion, feeding each produced
// message back into the model.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestSelectionMovesWithinPage(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(7, domain.TicketStatusOpen)}
	m := loadedModel(t, source, domain.RolePatient)

	if m.view.SelectedID != "open-1" {
		t.Fatalf("initial selection = %q, want open-1", m.view.SelectedID)
	}

	updated, _ := m.Update(keyPress('j'))
	m = updated.(Model)
	if m.view.SelectedID != "open-2" {
		t.Fatalf("selection = %q, want open-2", m.view.SelectedID)
	}

	// Moving past the end of the page is a no-op, not a page flip.
	for i := 0; i < 10; i++ {
		updated, _ = m.Update(keyPress('j'))
		m = updated.(Model)
	}
	if m.view.SelectedID != "open-5" {
		t.Fatalf("selection = %q, want pinned at open-5", m.view.SelectedID)
	}
	if m.view.Page != 1 {
		t.Fatalf("page = %d, want 1", m.view.Page)
	}

	updated, _ = m.Update(keyPress('k'))
	m = updated.(Model)
	if m.view.SelectedID != "open-4" {
		t.Fatalf("selection = %q, want open-4", m.view.SelectedID)
	}
}

func TestPageSwitchResetsSelection(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(7, domain.TicketStatusOpen)}
	m := loadedModel(t, source, domain.RolePatient)

	updated, _ := m.Update(keyPress('l'))
	m = updated.(Model)
	if m.view.Page != 2 {
		t.Fatalf("page = %d, want 2", m.view.Page)
	}
	if m.view.SelectedID != "open-6" {
		t.Fatalf("selection = %q, want front of page 2", m.view.SelectedID)
	}

	// Past the last page is a no-op.
	updated, _ = m.Update(keyPress('l'))
	m = updated.(Model)
	if m.view.Page != 2 {
		t.Fatalf("page = %d, want still 2", m.view.Page)
	}

	updated, _ = m.Update(keyPress('h'))
	m = updated.(Model)
	if m.view.Page != 1 || m.view.SelectedID != "open-1" {
		t.Fatalf("page %d selection %q, want page 1 at open-1", m.view.Page, m.view.SelectedID)
	}
}

func TestTabSwitchIsDoctorOnly(t *testing.T) {
	tickets := append(makeTickets(2, domain.TicketStatusOpen), makeTickets(3, domain.TicketStatusClosed)...)

	doctor := loadedModel(t, &fakeSource{tickets: tickets}, domain.RoleDoctor)
	updated, _ := doctor.Update(tea.KeyMsg{Type: tea.KeyTab})
	doctor = updated.(Model)
	if doctor.activeTab != domain.TicketStatusInProgress {
		t.Fatalf("activeTab = %s, want in-progress", doctor.activeTab)
	}
	if len(doctor.view.Filtered) != 0 {
		t.Fatalf("filtered = %d, want 0 on the empty tab", len(doctor.view.Filtered))
	}

	updated, _ = doctor.Update(tea.KeyMsg{Type: tea.KeyTab})
	doctor = updated.(Model)
	if doctor.activeTab != domain.TicketStatusClosed {
		t.Fatalf("activeTab = %s, want closed", doctor.activeTab)
	}
	if doctor.view.SelectedID != "closed-1" {
		t.Fatalf("selection = %q, want front of the closed tab", doctor.view.SelectedID)
	}

	patient := loadedModel(t, &fakeSource{tickets: tickets}, domain.RolePatient)
	updated, _ = patient.Update(tea.KeyMsg{Type: tea.KeyTab})
	patient = updated.(Model)
	if patient.activeTab != domain.TicketStatusOpen {
		t.Fatalf("patient tab moved to %s", patient.activeTab)
	}
	if len(patient.view.Filtered) != 5 {
		t.Fatalf("patient filtered = %d, want all 5", len(patient.view.Filtered))
	}
}

func TestStaleFetchIsDropped(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(3, domain.TicketStatusOpen)}
	m := loadedModel(t, source, domain.RolePatient)
	m.fetchSeq = 2

	stale := []dto.Ticket{{ID: "stale", Status: domain.TicketStatusOpen}}
	updated, _ := m.Update(ticketsLoadedMsg{seq: 1, tickets: stale})
	m = updated.(Model)

	if len(m.rawTickets) != 3 {
		t.Fatalf("rawTickets = %d, want the newer fetch kept", len(m.rawTickets))
	}
	if m.view.SelectedID == "stale" {
		t.Fatal("stale response overwrote the view")
	}
}

func TestDoctorTransitionRefetches(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(2, domain.TicketStatusOpen)}
	m := loadedModel(t, source, domain.RoleDoctor)

	updated, cmd := m.Update(keyPress('p'))
	m = drain(t, updated.(Model), cmd)

	if len(source.updates) != 1 || source.updates[0] != "open-1:in-progress" {
		t.Fatalf("updates = %v, want one in-progress transition for open-1", source.updates)
	}
	if m.notice != "" {
		t.Fatalf("notice = %q, want empty after success", m.notice)
	}
}

func TestPatientCannotMutate(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(2, domain.TicketStatusOpen)}
	m := loadedModel(t, source, domain.RolePatient)

	for _, r := range []rune{'p', 'c', 'o', 'd'} {
		updated, cmd := m.Update(keyPress(r))
		m = drain(t, updated.(Model), cmd)
	}

	if len(source.updates) != 0 || len(source.deletes) != 0 {
		t.Fatalf("patient reached mutations: updates=%v deletes=%v", source.updates, source.deletes)
	}
}

func TestTransitionGatedBySelectedStatus(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(2, domain.TicketStatusClosed)}
	m := loadedModel(t, source, domain.RoleDoctor)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.view.SelectedID != "closed-1" {
		t.Fatalf("selection = %q, want closed-1", m.view.SelectedID)
	}

	// A closed ticket cannot be progressed, only reopened.
	updated, cmd := m.Update(keyPress('p'))
	m = drain(t, updated.(Model), cmd)
	if len(source.updates) != 0 {
		t.Fatalf("updates = %v, want none", source.updates)
	}

	updated, cmd = m.Update(keyPress('o'))
	m = drain(t, updated.(Model), cmd)
	if len(source.updates) != 1 || source.updates[0] != "closed-1:open" {
		t.Fatalf("updates = %v, want one reopen", source.updates)
	}
}

func TestFailedMutationKeepsViewAndShowsNotice(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(2, domain.TicketStatusOpen)}
	m := loadedModel(t, source, domain.RoleDoctor)
	before := m.view

	updated, cmd := m.Update(keyPress('d'))
	m = updated.(Model)
	source.err = errors.New("doctor role required")
	m = drain(t, m, cmd)

	if m.notice != "doctor role required" {
		t.Fatalf("notice = %q, want the failure message", m.notice)
	}
	if m.view.SelectedID != before.SelectedID || m.view.Page != before.Page {
		t.Fatal("failed mutation disturbed the view")
	}
}

func TestComposeCapturesKeystrokes(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(1, domain.TicketStatusOpen)}
	m := loadedModel(t, source, domain.RolePatient)

	updated, _ := m.Update(keyPress('n'))
	m = updated.(Model)
	if m.focus != FocusCompose {
		t.Fatal("n did not focus the compose field")
	}

	// Single-letter shortcuts go into the text, not the controller.
	for _, r := range []rune{'q', 'd', 'p'} {
		updated, _ = m.Update(keyPress(r))
		m = updated.(Model)
	}
	if m.compose.Value() != "qdp" {
		t.Fatalf("compose value = %q, want %q", m.compose.Value(), "qdp")
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = drain(t, updated.(Model), cmd)
	if len(source.creates) != 1 || source.creates[0] != "qdp" {
		t.Fatalf("creates = %v, want the composed description", source.creates)
	}
	if m.focus != FocusList {
		t.Fatal("submit did not return focus to the list")
	}
}

func TestComposeCancel(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(1, domain.TicketStatusOpen)}
	m := loadedModel(t, source, domain.RolePatient)

	updated, _ := m.Update(keyPress('n'))
	m = updated.(Model)
	updated, _ = m.Update(keyPress('x'))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.focus != FocusList {
		t.Fatal("esc did not cancel compose")
	}
	if len(source.creates) != 0 {
		t.Fatalf("creates = %v, want none", source.creates)
	}
}

func TestComposeRejectsEmptySubmission(t *testing.T) {
	source := &fakeSource{tickets: makeTickets(1, domain.TicketStatusOpen)}
	m := loadedModel(t, source, domain.RolePatient)

	updated, _ := m.Update(keyPress('n'))
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = drain(t, updated.(Model), cmd)

	if len(source.creates) != 0 {
		t.Fatalf("creates = %v, want none", source.creates)
	}
	if m.notice == "" {
		t.Fatal("empty submission produced no notice")
	}
}
