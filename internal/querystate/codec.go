// Package querystate — единственная точка преобразования между строкой запроса
// адресной строки и состоянием фильтров, пагинации и диалога.
package querystate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// Ключи строки запроса.
const (
	KeyCustomer = "customer"
	KeyStatus   = "status"
	KeyCountry  = "country"
	KeyPage     = "page"
	KeyDialog   = "dialog"
	KeyID       = "id"
)

// DefaultPage — страница по умолчанию; в каноническую строку не попадает.
const DefaultPage = 1

// DialogMode описывает диалог, открытый через адресную строку.
type DialogMode string

const (
	DialogNone   DialogMode = ""
	DialogCreate DialogMode = "create"
	DialogEdit   DialogMode = "edit"
)

// State — проекция строки запроса. Никогда не изменяется на месте:
// все With*-методы возвращают новое значение.
type State struct {
	Customer string
	Status   string
	Country  string
	Page     int
	Dialog   DialogMode
	// EditID заполнен только при Dialog == DialogEdit.
	EditID int64
}

// Encode возвращает каноническую строку запроса без ведущего "?".
// Пустые значения и страница по умолчанию опускаются, ключи сортируются.
func Encode(s State) string {
	return values(s.Canonical(), true).Encode()
}

// Decode разбирает строку запроса. Отсутствующие и некорректные ключи
// заменяются значениями по умолчанию, ошибка не возвращается.
func Decode(query string) State {
	query = strings.TrimPrefix(strings.TrimSpace(query), "?")
	// ParseQuery пропускает битые пары и возвращает остальные.
	v, _ := url.ParseQuery(query)

	s := State{
		Customer: v.Get(KeyCustomer),
		Status:   v.Get(KeyStatus),
		Country:  v.Get(KeyCountry),
		Page:     parsePage(v.Get(KeyPage)),
	}

	switch DialogMode(strings.TrimSpace(v.Get(KeyDialog))) {
	case DialogCreate:
		s.Dialog = DialogCreate
	case DialogEdit:
		if id, err := strconv.ParseInt(strings.TrimSpace(v.Get(KeyID)), 10, 64); err == nil && id > 0 {
			s.Dialog = DialogEdit
			s.EditID = id
		}
	}

	return s.Canonical()
}

// Canonical приводит состояние к каноническому виду: обрезает пробелы,
// подставляет страницу по умолчанию и сбрасывает несогласованный диалог.
func (s State) Canonical() State {
	s.Customer = strings.TrimSpace(s.Customer)
	s.Status = strings.TrimSpace(s.Status)
	s.Country = strings.TrimSpace(s.Country)
	if s.Page < DefaultPage {
		s.Page = DefaultPage
	}
	switch s.Dialog {
	case DialogCreate:
		s.EditID = 0
	case DialogEdit:
		if s.EditID <= 0 {
			s.Dialog = DialogNone
			s.EditID = 0
		}
	default:
		s.Dialog = DialogNone
		s.EditID = 0
	}
	return s
}

// FetchKey — каноническая строка только для серверных фильтров.
// Эффект перезагрузки списка сравнивает ключи строками; страница и диалог в ключ не входят,
// потому что пагинация выполняется на клиенте.
func (s State) FetchKey() string {
	c := s.Canonical()
	return values(State{Customer: c.Customer, Status: c.Status, Country: c.Country}, false).Encode()
}

// Filter возвращает серверный фильтр, соответствующий состоянию.
func (s State) Filter() domain.OrderFilter {
	c := s.Canonical()
	return domain.OrderFilter{Customer: c.Customer, Status: c.Status, Country: c.Country}
}

// HasFilters сообщает, задан ли хотя бы один серверный фильтр.
func (s State) HasFilters() bool {
	return !s.Filter().IsEmpty()
}

// WithFilters заменяет все серверные фильтры и в том же переходе сбрасывает страницу.
func (s State) WithFilters(customer, status, country string) State {
	s.Customer = customer
	s.Status = status
	s.Country = country
	s.Page = DefaultPage
	return s.Canonical()
}

// WithStatus задаёт только фильтр по статусу, сохраняя остальные; страница сбрасывается.
func (s State) WithStatus(status string) State {
	return s.WithFilters(s.Customer, status, s.Country)
}

// WithoutFilters очищает серверные фильтры и сбрасывает страницу.
func (s State) WithoutFilters() State {
	return s.WithFilters("", "", "")
}

// WithPage возвращает состояние с указанной страницей.
func (s State) WithPage(page int) State {
	s.Page = page
	return s.Canonical()
}

// WithCreateDialog открывает диалог создания.
func (s State) WithCreateDialog() State {
	s.Dialog = DialogCreate
	s.EditID = 0
	return s.Canonical()
}

// WithEditDialog открывает диалог редактирования заказа id.
func (s State) WithEditDialog(id int64) State {
	s.Dialog = DialogEdit
	s.EditID = id
	return s.Canonical()
}

// WithoutDialog закрывает диалог, сохраняя фильтры и страницу.
func (s State) WithoutDialog() State {
	s.Dialog = DialogNone
	s.EditID = 0
	return s.Canonical()
}

func values(s State, withTransient bool) url.Values {
	v := url.Values{}
	setNonEmpty(v, KeyCustomer, s.Customer)
	setNonEmpty(v, KeyStatus, s.Status)
	setNonEmpty(v, KeyCountry, s.Country)
	if !withTransient {
		return v
	}
	if s.Page > DefaultPage {
		v.Set(KeyPage, strconv.Itoa(s.Page))
	}
	switch s.Dialog {
	case DialogCreate:
		v.Set(KeyDialog, string(DialogCreate))
	case DialogEdit:
		v.Set(KeyDialog, string(DialogEdit))
		v.Set(KeyID, strconv.FormatInt(s.EditID, 10))
	}
	return v
}

func setNonEmpty(v url.Values, key, value string) {
	if value == "" {
		return
	}
	v.Set(key, value)
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < DefaultPage {
		return DefaultPage
	}
	return page
}
