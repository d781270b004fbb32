package admin

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	"github.com/vladislavdragonenkov/orders-admin/internal/querystate"
)

// Key — клавиатурное сокращение диалога.
type Key int

const (
	// KeyEnter сохраняет форму, если это разрешено.
	KeyEnter Key = iota + 1
	// KeyEscape закрывает диалог или панель фильтров.
	KeyEscape
)

type dialogState struct {
	// seq растёт при каждом открытии/закрытии, чтобы отличать ответы старых диалогов.
	seq     uint64
	form    FormBuffer
	seeded  bool
	saving  bool
	touched map[string]bool
}

// openDialog вызывается при смене диалога в адресной строке.
func (p *Page) openDialog() {
	p.dialog = dialogState{seq: p.dialog.seq + 1}

	switch p.state.Dialog {
	case querystate.DialogCreate:
		p.dialog.form = DefaultForm()
		p.dialog.seeded = true
	case querystate.DialogEdit:
		p.seedPendingEdit()
	}
}

// seedPendingEdit заполняет буфер редактирования, как только список загружен.
func (p *Page) seedPendingEdit() {
	if p.state.Dialog != querystate.DialogEdit || p.dialog.seeded || !p.loaded {
		return
	}

	order, ok := p.findOrder(p.state.EditID)
	if !ok {
		p.notify(Notice{Kind: NoticeNotFound, Message: "Order #" + formatID(p.state.EditID) + " not found"})
		p.setState(p.state.WithoutDialog())
		return
	}
	p.dialog.form = FormFromOrder(order)
	p.dialog.seeded = true
}

// OpenCreate открывает диалог создания с формой по умолчанию.
func (p *Page) OpenCreate() Cmd {
	return p.setState(p.state.WithCreateDialog())
}

// OpenEdit открывает диалог редактирования заказа id.
func (p *Page) OpenEdit(id int64) Cmd {
	return p.setState(p.state.WithEditDialog(id))
}

// Close закрывает диалог, сохраняя фильтры и страницу.
func (p *Page) Close() Cmd {
	if p.state.Dialog == querystate.DialogNone {
		return nil
	}
	return p.setState(p.state.WithoutDialog())
}

// Cancel — то же, что Close.
func (p *Page) Cancel() Cmd {
	return p.Close()
}

// HandleKey обрабатывает клавиатурные сокращения.
func (p *Page) HandleKey(k Key) Cmd {
	switch k {
	case KeyEnter:
		return p.Save()
	case KeyEscape:
		if p.DialogOpen() {
			return p.Close()
		}
		p.CloseFilters()
	}
	return nil
}

// DialogOpen сообщает, открыт ли диалог.
func (p *Page) DialogOpen() bool {
	return p.state.Dialog != querystate.DialogNone
}

// Form возвращает текущий буфер формы.
func (p *Page) Form() FormBuffer {
	return p.dialog.form
}

// Saving сообщает, что сохранение отправлено и ответа ещё нет.
func (p *Page) Saving() bool {
	return p.dialog.saving
}

func (p *Page) SetCustomer(v string) { p.setField(FieldCustomer, v) }
func (p *Page) SetCountry(v string)  { p.setField(FieldCountry, v) }
func (p *Page) SetStatus(v string)   { p.setField(FieldStatus, v) }
func (p *Page) SetTotal(v string)    { p.setField(FieldTotal, v) }

// setField игнорирует изменения при закрытом диалоге и во время сохранения.
func (p *Page) setField(field, v string) {
	if !p.DialogOpen() || !p.dialog.seeded || p.dialog.saving {
		return
	}

	switch field {
	case FieldCustomer:
		p.dialog.form.Customer = v
	case FieldCountry:
		p.dialog.form.Country = v
	case FieldStatus:
		p.dialog.form.Status = v
	case FieldTotal:
		p.dialog.form.Total = v
	}

	if p.dialog.touched == nil {
		p.dialog.touched = make(map[string]bool)
	}
	p.dialog.touched[field] = true
}

// FormErrors возвращает замечания по полям, которые пользователь уже менял.
func (p *Page) FormErrors() map[string]string {
	all := domain.FieldErrors(p.dialog.form.Validate())
	shown := make(map[string]string, len(all))
	for field, msg := range all {
		if p.dialog.touched[field] {
			shown[field] = msg
		}
	}
	return shown
}

// CanSave сообщает, можно ли отправить форму.
func (p *Page) CanSave() bool {
	return p.DialogOpen() && p.dialog.seeded && !p.dialog.saving && len(p.dialog.form.Validate()) == 0
}

// Save отправляет форму. Без CanSave ничего не делает; одновременно выполняется не больше одной записи.
func (p *Page) Save() Cmd {
	if !p.CanSave() {
		return nil
	}
	fields, _ := p.dialog.form.Fields()
	p.dialog.saving = true

	seq := p.dialog.seq
	store := p.store
	if p.state.Dialog == querystate.DialogCreate {
		return func(ctx context.Context) Msg {
			order, err := store.Create(ctx, fields)
			return SavedMsg{Seq: seq, Create: true, Order: order, Err: err}
		}
	}

	id := p.state.EditID
	return func(ctx context.Context) Msg {
		order, err := store.Update(ctx, id, fields)
		return SavedMsg{Seq: seq, ID: id, Order: order, Err: err}
	}
}

func (p *Page) handleSaved(msg SavedMsg) {
	current := msg.Seq == p.dialog.seq
	if current {
		p.dialog.saving = false
	}

	switch {
	case msg.Err == nil:
		if msg.Create {
			p.mergeCreated(msg.Order)
			p.notify(Notice{Kind: NoticeInfo, Message: "Order #" + formatID(msg.Order.ID) + " created"})
		} else {
			p.replaceOrder(msg.Order)
			p.notify(Notice{Kind: NoticeInfo, Message: "Order #" + formatID(msg.Order.ID) + " updated"})
		}
	case !msg.Create && domain.IsNotFound(msg.Err):
		p.removeOrder(msg.ID)
		p.notify(noticeFor(msg.Err, "Order #"+formatID(msg.ID)+" no longer exists"))
	default:
		p.logger.WithError(msg.Err).WithFields(log.Fields{
			"create":   msg.Create,
			"order_id": msg.ID,
		}).Warn("failed to save order")
		p.notify(noticeFor(msg.Err, "Failed to save order"))
		return
	}

	if current {
		p.setState(p.state.WithoutDialog())
	}
}
