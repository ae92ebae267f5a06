package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/updoc-health/updoc/internal/api/dto"
	"github.com/updoc-health/updoc/internal/domain"
)

// Styles holds the lipgloss styles used by the viewer.
type Styles struct {
	Header      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Selected    lipgloss.Style
	Row         lipgloss.Style
	StatusOpen  lipgloss.Style
	StatusWork  lipgloss.Style
	StatusDone  lipgloss.Style
	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	Notice      lipgloss.Style
	Pager       lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles is the built-in color scheme.
var DefaultStyles = Styles{
	Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1),
	TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Underline(true).Padding(0, 1),
	TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Padding(0, 1),
	Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	Row:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	StatusOpen:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	StatusWork:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	StatusDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	DetailTitle: lipgloss.NewStyle().Bold(true),
	DetailLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	Notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	Pager:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// statusGlyph marks list rows by ticket status.
func statusGlyph(status domain.TicketStatus) string {
	switch status {
	case domain.TicketStatusOpen:
		return "!"
	case domain.TicketStatusInProgress:
		return "→"
	case domain.TicketStatusClosed:
		return "✓"
	}
	return "?"
}

func (m Model) statusStyle(status domain.TicketStatus) lipgloss.Style {
	switch status {
	case domain.TicketStatusOpen:
		return m.styles.StatusOpen
	case domain.TicketStatusInProgress:
		return m.styles.StatusWork
	default:
		return m.styles.StatusDone
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.user.Role == domain.RoleDoctor {
		b.WriteString(m.renderTabs())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderDetail())

	if m.focus == FocusCompose {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailTitle.Render("New consultation"))
		b.WriteString("\n")
		b.WriteString(m.compose.View())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("Updoc — %s (%s)", m.user.Username, m.user.Role)
	return m.styles.Header.Render(title)
}

func (m Model) renderTabs() string {
	tabs := []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusClosed,
	}
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := string(tab)
		if tab == m.activeTab {
			parts = append(parts, m.styles.TabActive.Render(label))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderList() string {
	if m.loading {
		return m.styles.Pager.Render("  fetching tickets...")
	}
	if len(m.view.PageItems) == 0 {
		return m.styles.Pager.Render("  no tickets")
	}

	var b strings.Builder
	for _, ticket := range m.view.PageItems {
		glyph := m.statusStyle(ticket.Status).Render(statusGlyph(ticket.Status))
		label := ticket.Title
		if label == "" {
			label = truncate(ticket.Description, 48)
		}
		line := fmt.Sprintf("%s %s", glyph, label)
		if ticket.ID == m.view.SelectedID {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Pager.Render(m.pagerLine()))
	b.WriteString("\n")
	return b.String()
}

// pagerLine reports the selection's position within the filtered list,
// e.g. "Ticket 7 of 12 · page 2/3".
func (m Model) pagerLine() string {
	position := (m.view.Page-1)*PageSize + m.view.SelectedIndex() + 1
	return fmt.Sprintf("  Ticket %d of %d · page %d/%d",
		position, len(m.view.Filtered), m.view.Page, m.view.TotalPages)
}

func (m Model) renderDetail() string {
	selected, ok := m.view.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	label := m.styles.DetailLabel.Render

	title := selected.Title
	if title == "" {
		title = "Consultation"
	}
	b.WriteString(m.styles.DetailTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(label("status:  "))
	b.WriteString(m.statusStyle(selected.Status).Render(string(selected.Status)))
	b.WriteString("\n")
	b.WriteString(label("created: "))
	b.WriteString(selected.CreatedAt.Format("2006-01-02 15:04"))
	b.WriteString("\n")
	if selected.PatientName != "" {
		b.WriteString(label("patient: "))
		b.WriteString(selected.PatientName)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(selected.Description)
	b.WriteString("\n")

	if len(m.actions) > 0 && m.actionsFor == selected.ID {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailTitle.Render("History"))
		b.WriteString("\n")
		for _, action := range m.actions {
			b.WriteString(renderAction(action, m.styles.DetailLabel))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderAction(action dto.Action, label lipgloss.Style) string {
	return fmt.Sprintf("%s %s",
		label.Render(action.Timestamp.Format("2006-01-02 15:04")),
		action.Description)
}

func (m Model) renderHelp() string {
	if m.focus == FocusCompose {
		return m.styles.Help.Render("C-d submit · Esc cancel")
	}
	parts := []string{"j/k move", "h/l page", "n new"}
	if m.user.Role == domain.RoleDoctor {
		parts = append(parts, "Tab tabs", "p progress", "c close", "o reopen", "d delete")
	}
	parts = append(parts, "q quit")
	return m.styles.Help.Render(strings.Join(parts, " · "))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
