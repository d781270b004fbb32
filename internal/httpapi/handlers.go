package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	"github.com/vladislavdragonenkov/orders-admin/internal/service/orders"
)

// orderRequest принимает total и числом, и строкой с числом: {"total": 100} и {"total": "100"}.
type orderRequest struct {
	Customer string          `json:"customer"`
	Country  string          `json:"country"`
	Status   string          `json:"status"`
	Total    decimal.Decimal `json:"total"`
}

func (r orderRequest) fields() (domain.OrderFields, error) {
	fields := domain.OrderFields{
		Customer: r.Customer,
		Country:  r.Country,
		Status:   domain.OrderStatus(r.Status),
	}
	total, err := domain.TotalFromDecimal(r.Total)
	if err != nil {
		// Validate видит нулевую сумму; её замечание заменяется точным.
		errs := fields.Validate()
		if len(errs) > 0 && errors.Is(errs[len(errs)-1], domain.ErrTotalInvalid) {
			errs = errs[:len(errs)-1]
		}
		return fields, &orders.ValidationError{Errors: append(errs, err)}
	}
	fields.Total = total
	return fields, nil
}

// DeleteResponse — тело ответа на успешное удаление.
type DeleteResponse struct {
	Success bool         `json:"success"`
	Deleted domain.Order `json:"deleted"`
}

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (s *Server) listOrders(c *gin.Context) {
	filter := domain.OrderFilter{
		Customer: c.Query("customer"),
		Status:   c.Query("status"),
		Country:  c.Query("country"),
	}

	list, err := s.orders.List(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err, "Failed to fetch orders")
		return
	}
	if list == nil {
		list = []domain.Order{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body", Details: err.Error()})
		return
	}

	fields, err := req.fields()
	if err != nil {
		s.fail(c, err, "Failed to create order")
		return
	}

	order, err := s.orders.Create(c.Request.Context(), fields)
	if err != nil {
		s.fail(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) updateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body", Details: err.Error()})
		return
	}

	fields, err := req.fields()
	if err != nil {
		s.fail(c, err, "Failed to update order")
		return
	}

	order, err := s.orders.Update(c.Request.Context(), id, fields)
	if err != nil {
		s.fail(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := s.orders.Delete(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "Failed to delete order")
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Success: true, Deleted: order})
}

// parseID пишет 400 и возвращает false, если id не положительное целое.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order id", Details: c.Param("id")})
		return 0, false
	}
	return id, true
}

func (s *Server) fail(c *gin.Context, err error, message string) {
	_ = c.Error(err)

	status := mapErrorToStatus(err)
	resp := ErrorResponse{Error: message, Details: err.Error()}
	switch status {
	case http.StatusBadRequest:
		resp.Error = "Missing or invalid fields"
		var verr *orders.ValidationError
		if errors.As(err, &verr) {
			resp.Details = domain.JoinErrors(verr.Errors)
			resp.Fields = verr.Fields()
		}
	case http.StatusNotFound:
		resp.Error = "Order not found"
	}
	c.JSON(status, resp)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
