// Package webui — браузерный интерфейс администратора заказов.
// Страница отрисовывается на сервере из admin.Page, состояние которой хранится в сессии.
package webui

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/admin"
	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	"github.com/vladislavdragonenkov/orders-admin/internal/querystate"
)

const (
	// BasePath — корень веб-интерфейса.
	BasePath = "/admin/orders"

	sessionCookie     = "orders_admin_session"
	defaultSessionTTL = 30 * time.Minute
	// formLocation — скрытое поле форм с текущей строкой запроса вкладки.
	formLocation = "location"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Options — параметры веб-интерфейса.
type Options struct {
	PageSize   int
	SessionTTL time.Duration
	Logger     *log.Entry
}

// Handler обслуживает страницы /admin/orders.
type Handler struct {
	store    admin.Store
	sessions *sessionStore
	logger   *log.Entry
}

// Register монтирует веб-интерфейс на engine.
func Register(engine *gin.Engine, store admin.Store, opts Options) *Handler {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.WithFields(log.Fields{"component": "webui", "layer": "transport"})
	}

	h := &Handler{store: store, logger: opts.Logger}
	h.sessions = newSessionStore(opts.SessionTTL, func() *admin.Page {
		return admin.NewPage(store, admin.WithPageSize(opts.PageSize), admin.WithLogger(opts.Logger))
	})

	engine.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")))

	engine.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, BasePath) })
	group := engine.Group(BasePath)
	group.GET("", h.show)
	group.POST("/search", h.action(h.search))
	group.POST("/filters", h.action(h.filters))
	group.POST("/status", h.action(h.status))
	group.POST("/refresh", h.action(func(c *gin.Context, p *admin.Page) admin.Cmd { return p.Refresh() }))
	group.POST("/save", h.action(h.save))
	group.POST("/:id/delete", h.action(h.remove))
	return h
}

// session находит сессию браузера и продлевает cookie.
func (h *Handler) session(c *gin.Context) *session {
	id, _ := c.Cookie(sessionCookie)
	sess, id := h.sessions.get(id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, BasePath, "", false, true)
	return sess
}

func (h *Handler) show(c *gin.Context) {
	sess := h.session(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	page := sess.page
	admin.Run(c.Request.Context(), page, page.Navigate(c.Request.URL.RawQuery))

	// Адресная строка всегда отражает каноническое состояние.
	if page.Location() != c.Request.URL.RawQuery {
		c.Redirect(http.StatusSeeOther, pageURL(page.Location()))
		return
	}

	c.HTML(http.StatusOK, "page.html", newPageData(page))
}

type actionFunc func(c *gin.Context, p *admin.Page) admin.Cmd

// action синхронизирует страницу с вкладкой, выполняет действие и
// перенаправляет на каноническое состояние (POST/redirect/GET).
func (h *Handler) action(fn actionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := h.session(c)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		page := sess.page
		ctx := c.Request.Context()
		admin.Run(ctx, page, page.Navigate(c.PostForm(formLocation)))
		admin.Run(ctx, page, fn(c, page))

		c.Redirect(http.StatusSeeOther, pageURL(page.Location()))
	}
}

func (h *Handler) search(c *gin.Context, p *admin.Page) admin.Cmd {
	p.SetSearch(c.PostForm("q"))
	return nil
}

func (h *Handler) filters(c *gin.Context, p *admin.Page) admin.Cmd {
	if c.PostForm("action") == "reset" {
		return p.ResetFilters()
	}
	p.OpenFilters()
	p.SetDraftCustomer(c.PostForm(querystate.KeyCustomer))
	p.SetDraftStatus(c.PostForm(querystate.KeyStatus))
	p.SetDraftCountry(c.PostForm(querystate.KeyCountry))
	return p.ApplyFilters()
}

func (h *Handler) status(c *gin.Context, p *admin.Page) admin.Cmd {
	return p.FilterByStatus(domain.OrderStatus(c.PostForm(querystate.KeyStatus)))
}

func (h *Handler) save(c *gin.Context, p *admin.Page) admin.Cmd {
	if c.PostForm("action") == "cancel" {
		return p.Cancel()
	}
	p.SetCustomer(c.PostForm(admin.FieldCustomer))
	p.SetCountry(c.PostForm(admin.FieldCountry))
	p.SetStatus(c.PostForm(admin.FieldStatus))
	p.SetTotal(c.PostForm(admin.FieldTotal))
	return p.HandleKey(admin.KeyEnter)
}

func (h *Handler) remove(c *gin.Context, p *admin.Page) admin.Cmd {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.WithField("id", c.Param("id")).Warn("invalid order id in delete form")
		return nil
	}
	return p.Delete(id)
}

func pageURL(location string) string {
	if location == "" {
		return BasePath
	}
	return BasePath + "?" + location
}

// pageData — модель шаблона.
type pageData struct {
	admin.View
	Rows      []rowData
	Notices   []admin.Notice
	BasePath  string
	PrevURL   string
	NextURL   string
	CreateURL string
	CloseURL  string
}

type rowData struct {
	admin.Row
	EditURL string
}

func newPageData(p *admin.Page) pageData {
	view := p.View()
	state := p.State()

	rows := make([]rowData, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, rowData{Row: row, EditURL: pageURL(querystate.Encode(state.WithEditDialog(row.ID)))})
	}

	return pageData{
		View:      view,
		Rows:      rows,
		Notices:   p.Notices(),
		BasePath:  BasePath,
		PrevURL:   pageURL(querystate.Encode(state.WithPage(view.Page - 1))),
		NextURL:   pageURL(querystate.Encode(state.WithPage(view.Page + 1))),
		CreateURL: pageURL(querystate.Encode(state.WithCreateDialog())),
		CloseURL:  pageURL(querystate.Encode(state.WithoutDialog())),
	}
}

var templateFuncs = template.FuncMap{
	"selected": func(a, b string) bool {
		return a == b
	},
}
