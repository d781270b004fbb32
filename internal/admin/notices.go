package admin

import (
	"errors"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// NoticeKind — категория всплывающего уведомления.
type NoticeKind string

const (
	NoticeValidation NoticeKind = "validation"
	NoticeNotFound   NoticeKind = "not_found"
	NoticeFetch      NoticeKind = "fetch"
	NoticeInfo       NoticeKind = "info"
)

// Notice — уведомление (toast) для пользователя.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// IsError сообщает, что уведомление описывает ошибку.
func (n Notice) IsError() bool {
	return n.Kind != NoticeInfo
}

func noticeFor(err error, message string) Notice {
	kind := NoticeFetch
	switch {
	case errors.Is(err, domain.ErrValidation):
		kind = NoticeValidation
	case errors.Is(err, domain.ErrOrderNotFound):
		kind = NoticeNotFound
	}
	if err != nil {
		message += ": " + err.Error()
	}
	return Notice{Kind: kind, Message: message}
}

func (p *Page) notify(n Notice) {
	p.notices = append(p.notices, n)
}

// Notices возвращает накопленные уведомления и очищает очередь.
func (p *Page) Notices() []Notice {
	out := p.notices
	p.notices = nil
	return out
}
