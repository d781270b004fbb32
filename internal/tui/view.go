package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vladislavdragonenkov/orders-admin/internal/admin"
	"github.com/vladislavdragonenkov/orders-admin/internal/querystate"
)

const rowFormat = "%-4s %-10s %-22s %-16s %10s  %s"

func (m *Model) View() string {
	view := m.page.View()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Orders"))
	b.WriteString("  ")
	b.WriteString(locationStyle.Render("?" + view.Location))
	b.WriteString("\n")

	b.WriteString(m.renderSearch(view))
	b.WriteString("\n")
	b.WriteString(renderFilters(view))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf(rowFormat, "#", "Date", "Customer", "Country", "Total", "Status")))
	b.WriteString("\n")
	for i, row := range view.Rows {
		b.WriteString(m.renderRow(i, row))
		b.WriteString("\n")
	}
	switch {
	case view.Loading && len(view.Rows) == 0:
		b.WriteString(mutedStyle.Render("Loading…"))
		b.WriteString("\n")
	case len(view.Rows) == 0:
		b.WriteString(mutedStyle.Render("No orders found."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderPager(view))
	b.WriteString("\n")

	for _, n := range m.notices {
		b.WriteString(renderNotice(n))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeFilters:
		b.WriteString(m.renderFilterSheet(view.Sheet))
		b.WriteString("\n")
	case modeDialog:
		b.WriteString(m.renderDialog(view.Dialog))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(m.help()))
	return b.String()
}

func (m *Model) renderSearch(view admin.View) string {
	label := "Search: "
	if m.mode == modeSearch {
		return focusStyle.Render(label) + view.Search + "_"
	}
	if view.Search == "" {
		return mutedStyle.Render(label + "(press / to search)")
	}
	return label + view.Search
}

func renderFilters(view admin.View) string {
	if !view.HasFilters {
		return mutedStyle.Render("Filters: none")
	}
	var parts []string
	if view.Filters.Customer != "" {
		parts = append(parts, "customer="+view.Filters.Customer)
	}
	if view.Filters.Status != "" {
		parts = append(parts, "status="+view.Filters.Status)
	}
	if view.Filters.Country != "" {
		parts = append(parts, "country="+view.Filters.Country)
	}
	return "Filters: " + strings.Join(parts, " ")
}

func (m *Model) renderRow(i int, row admin.Row) string {
	line := fmt.Sprintf("%-4d %-10s %-22s %-16s %10d  ", row.Serial, row.Date, truncate(row.Customer, 22), truncate(row.Country, 16), row.Total)
	status := badge(string(row.Status), row.StatusClass)
	if row.Deleting {
		status += mutedStyle.Render(" deleting…")
	}
	if i == m.cursor && m.mode == modeTable {
		line = cursorStyle.Render(line)
	}
	return line + status
}

func renderPager(view admin.View) string {
	prev, next := "‹ prev", "next ›"
	if !view.CanPrev {
		prev = mutedStyle.Render(prev)
	}
	if !view.CanNext {
		next = mutedStyle.Render(next)
	}
	return fmt.Sprintf("%s  Page %d of %d (%d orders)  %s", prev, view.Page, view.TotalPages, view.TotalCount, next)
}

func renderNotice(n admin.Notice) string {
	if n.IsError() {
		return errorStyle.Render("✗ " + n.Message)
	}
	return infoStyle.Render("✓ " + n.Message)
}

func (m *Model) renderFilterSheet(sheet admin.FilterSheetView) string {
	values := map[string]string{
		querystate.KeyCustomer: sheet.Draft.Customer,
		querystate.KeyStatus:   orAny(sheet.Draft.Status),
		querystate.KeyCountry:  orAny(sheet.Draft.Country),
	}

	lines := []string{titleStyle.Render("Filters")}
	for i, field := range filterFields {
		lines = append(lines, m.renderField(i, field, values[field], field != querystate.KeyCustomer, ""))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderDialog(d admin.DialogView) string {
	lines := []string{titleStyle.Render(d.Title)}
	if !d.Ready {
		lines = append(lines, mutedStyle.Render("Loading order…"))
		return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	values := map[string]string{
		admin.FieldCustomer: d.Form.Customer,
		admin.FieldCountry:  d.Form.Country,
		admin.FieldStatus:   d.Form.Status,
		admin.FieldTotal:    d.Form.Total,
	}
	for i, field := range dialogFields {
		selectable := field == admin.FieldCountry || field == admin.FieldStatus
		lines = append(lines, m.renderField(i, field, values[field], selectable, d.Errors[field]))
	}

	switch {
	case d.Saving:
		lines = append(lines, mutedStyle.Render("Saving…"))
	case !d.CanSave:
		lines = append(lines, mutedStyle.Render("Fill in all fields to save"))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderField(i int, label, value string, selectable bool, errMsg string) string {
	if selectable {
		value = "‹ " + value + " ›"
	}
	line := fmt.Sprintf("  %-9s %s", label, value)
	if i == m.focus {
		line = focusStyle.Render("›" + line[1:])
	}
	if errMsg != "" {
		line += "  " + errorStyle.Render(errMsg)
	}
	return line
}

func (m *Model) help() string {
	switch m.mode {
	case modeSearch:
		return "type to search • enter done • esc clear"
	case modeFilters:
		return "tab next field • ←/→ choose • enter apply • ctrl+r reset • esc close"
	case modeDialog:
		return "tab next field • ←/→ choose • enter save • esc cancel"
	}
	return "↑/↓ select • ←/→ page • / search • f filters • s status • n new • e edit • d delete • r refresh • q quit"
}

func orAny(v string) string {
	if v == "" {
		return "Any"
	}
	return v
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
