package admin

// DefaultPageSize — число строк на странице по умолчанию.
const DefaultPageSize = 10

// Paginator считает границы страниц. Страницы нумеруются с 1.
type Paginator struct {
	Size int
}

// NewPaginator создаёт пагинатор; неположительный размер заменяется DefaultPageSize.
func NewPaginator(size int) Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Paginator{Size: size}
}

// TotalPages = max(1, ceil(count/size)).
func (p Paginator) TotalPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + p.Size - 1) / p.Size
}

// CanPrev сообщает, доступна ли предыдущая страница.
func (p Paginator) CanPrev(page int) bool {
	return page > 1
}

// CanNext сообщает, доступна ли следующая страница.
func (p Paginator) CanNext(page, count int) bool {
	return page < p.TotalPages(count)
}

// Offset возвращает индекс первого элемента страницы.
func (p Paginator) Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Size
}

// Slice возвращает элементы страницы page; для страницы вне диапазона — пустой срез.
func Slice[T any](items []T, page int, p Paginator) []T {
	if page < 1 {
		return []T{}
	}
	start := p.Offset(page)
	if start >= len(items) {
		return []T{}
	}
	end := min(start+p.Size, len(items))
	return items[start:end]
}
