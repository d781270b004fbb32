// Package tui — терминальный интерфейс администратора заказов на bubbletea.
// Цикл Update программы — единственный поток, который трогает admin.Page;
// команды страницы bubbletea выполняет в фоне и возвращает сообщениями.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vladislavdragonenkov/orders-admin/internal/admin"
	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	"github.com/vladislavdragonenkov/orders-admin/internal/querystate"
)

type mode int

const (
	modeTable mode = iota
	modeSearch
	modeFilters
	modeDialog
)

const maxNotices = 3

// Поля панели фильтров и диалога в порядке обхода по Tab.
var (
	filterFields = []string{querystate.KeyCustomer, querystate.KeyStatus, querystate.KeyCountry}
	dialogFields = []string{admin.FieldCustomer, admin.FieldCountry, admin.FieldStatus, admin.FieldTotal}
)

// Model — модель bubbletea поверх admin.Page.
type Model struct {
	ctx     context.Context
	page    *admin.Page
	initial admin.Cmd

	mode    mode
	cursor  int
	focus   int
	notices []admin.Notice
}

// New создаёт модель; query — начальная строка запроса, как при открытии ссылки.
func New(ctx context.Context, page *admin.Page, query string) *Model {
	m := &Model{ctx: ctx, page: page}
	m.initial = page.Navigate(query)
	m.syncMode()
	return m
}

// Location — каноническая строка запроса, отображаемая вместо адресной строки.
func (m *Model) Location() string {
	return m.page.Location()
}

// Notices — уведомления, показанные в последний раз.
func (m *Model) Notices() []admin.Notice {
	return m.notices
}

func (m *Model) Init() tea.Cmd {
	cmd := m.initial
	m.initial = nil
	return m.wrap(cmd)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case admin.Msg:
		cmd = m.wrap(m.page.Update(msg))
	case tea.KeyMsg:
		m.notices = nil
		cmd = m.handleKey(msg)
	}

	m.collectNotices()
	m.syncMode()
	m.clampCursor()
	return m, cmd
}

// wrap переводит команду страницы в команду bubbletea. Команды страницы
// не обращаются к Page, поэтому их можно выполнять вне цикла Update.
func (m *Model) wrap(cmd admin.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg { return cmd(ctx) }
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	switch m.mode {
	case modeSearch:
		m.handleSearchKey(msg)
		return nil
	case modeFilters:
		return m.wrap(m.handleFilterKey(msg))
	case modeDialog:
		return m.wrap(m.handleDialogKey(msg))
	}
	return m.handleTableKey(msg)
}

func (m *Model) handleTableKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "left", "h", "pgup":
		m.cursor = 0
		return m.wrap(m.page.PrevPage())
	case "right", "l", "pgdown":
		m.cursor = 0
		return m.wrap(m.page.NextPage())
	case "/":
		m.mode = modeSearch
	case "f":
		m.focus = 0
		m.page.OpenFilters()
	case "n":
		m.focus = 0
		return m.wrap(m.page.OpenCreate())
	case "r":
		return m.wrap(m.page.Refresh())
	case "enter", "e":
		if row, ok := m.selected(); ok {
			m.focus = 0
			return m.wrap(m.page.OpenEdit(row.ID))
		}
	case "d", "delete":
		if row, ok := m.selected(); ok {
			return m.wrap(m.page.Delete(row.ID))
		}
	case "s":
		if row, ok := m.selected(); ok {
			m.cursor = 0
			return m.wrap(m.page.FilterByStatus(row.Status))
		}
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeTable
	case tea.KeyEsc:
		m.page.SetSearch("")
		m.mode = modeTable
	default:
		if term, ok := edit(m.page.Search(), msg); ok {
			m.page.SetSearch(term)
		}
	}
	m.cursor = 0
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) admin.Cmd {
	draft := m.page.Draft()

	switch msg.Type {
	case tea.KeyEnter:
		m.cursor = 0
		return m.page.ApplyFilters()
	case tea.KeyCtrlR:
		m.cursor = 0
		return m.page.ResetFilters()
	case tea.KeyEsc:
		m.page.CloseFilters()
		return nil
	case tea.KeyTab, tea.KeyDown:
		m.focus = (m.focus + 1) % len(filterFields)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focus = (m.focus + len(filterFields) - 1) % len(filterFields)
		return nil
	}

	switch filterFields[m.focus] {
	case querystate.KeyCustomer:
		if v, ok := edit(draft.Customer, msg); ok {
			m.page.SetDraftCustomer(v)
		}
	case querystate.KeyStatus:
		if delta := cycleDelta(msg); delta != 0 {
			m.page.SetDraftStatus(cycle(withAny(statusNames()), draft.Status, delta))
		}
	case querystate.KeyCountry:
		if delta := cycleDelta(msg); delta != 0 {
			m.page.SetDraftCountry(cycle(withAny(domain.Countries()), draft.Country, delta))
		}
	}
	return nil
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) admin.Cmd {
	form := m.page.Form()

	switch msg.Type {
	case tea.KeyEnter:
		return m.page.HandleKey(admin.KeyEnter)
	case tea.KeyEsc:
		return m.page.HandleKey(admin.KeyEscape)
	case tea.KeyTab, tea.KeyDown:
		m.focus = (m.focus + 1) % len(dialogFields)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focus = (m.focus + len(dialogFields) - 1) % len(dialogFields)
		return nil
	}

	switch dialogFields[m.focus] {
	case admin.FieldCustomer:
		if v, ok := edit(form.Customer, msg); ok {
			m.page.SetCustomer(v)
		}
	case admin.FieldCountry:
		if delta := cycleDelta(msg); delta != 0 {
			m.page.SetCountry(cycle(domain.Countries(), form.Country, delta))
		}
	case admin.FieldStatus:
		if delta := cycleDelta(msg); delta != 0 {
			m.page.SetStatus(cycle(statusNames(), form.Status, delta))
		}
	case admin.FieldTotal:
		if v, ok := edit(form.Total, msg); ok {
			m.page.SetTotal(v)
		}
	}
	return nil
}

// syncMode приводит режим ввода к состоянию страницы: диалог и панель
// фильтров открываются и закрываются также по ответам сервера и ссылкам.
func (m *Model) syncMode() {
	switch {
	case m.page.DialogOpen():
		if m.mode != modeDialog {
			m.focus = 0
		}
		m.mode = modeDialog
	case m.page.FiltersOpen():
		m.mode = modeFilters
	case m.mode == modeDialog || m.mode == modeFilters:
		m.mode = modeTable
	}
}

func (m *Model) collectNotices() {
	m.notices = append(m.notices, m.page.Notices()...)
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
}

func (m *Model) clampCursor() {
	rows := len(m.page.View().Rows)
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (admin.Row, bool) {
	rows := m.page.View().Rows
	if m.cursor < 0 || m.cursor >= len(rows) {
		return admin.Row{}, false
	}
	return rows[m.cursor], true
}

// edit применяет к строке ввод символов и Backspace.
func edit(value string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return value + string(msg.Runes), true
	case tea.KeySpace:
		return value + " ", true
	case tea.KeyBackspace:
		runes := []rune(value)
		if len(runes) == 0 {
			return value, false
		}
		return string(runes[:len(runes)-1]), true
	}
	return value, false
}

func cycleDelta(msg tea.KeyMsg) int {
	switch msg.Type {
	case tea.KeyRight:
		return 1
	case tea.KeyLeft:
		return -1
	}
	return 0
}

// cycle возвращает соседнее значение списка. Значение вне списка
// переходит к первому или последнему элементу.
func cycle(options []string, current string, delta int) string {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta > 0 {
			return options[0]
		}
		return options[len(options)-1]
	}
	return options[(idx+delta+len(options))%len(options)]
}

func withAny(options []string) []string {
	return append([]string{""}, options...)
}

func statusNames() []string {
	statuses := domain.OrderStatuses()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
