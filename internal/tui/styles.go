package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vladislavdragonenkov/orders-admin/internal/admin"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	badgeBase = lipgloss.NewStyle().Padding(0, 1)

	badgeStyles = map[string]lipgloss.Style{
		admin.StatusClassBlue:   badgeBase.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("26")),
		admin.StatusClassPurple: badgeBase.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("91")),
		admin.StatusClassOrange: badgeBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")),
		admin.StatusClassGreen:  badgeBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("78")),
		admin.StatusClassGray:   badgeBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("250")),
	}
)

// badge отрисовывает статус цветом его класса.
func badge(status, class string) string {
	style, ok := badgeStyles[class]
	if !ok {
		style = badgeStyles[admin.StatusClassGray]
	}
	return style.Render(status)
}
