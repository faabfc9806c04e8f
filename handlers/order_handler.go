package handlers

import (
	"net/http"

	"ticketdesk/models"
	"ticketdesk/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type placeOrderRequest struct {
	Items []models.OrderItem `json:"items"`
}

// PlaceOrder handles POST /api/orders and creates one CONFIRMED ticket per
// item.
func (h *OrderHandler) PlaceOrder(e *core.RequestEvent) error {
	req := placeOrderRequest{}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}

	tickets, err := h.orderService.PlaceOrder(e.Request.Context(), req.Items)
	if err != nil {
		return apiError(err)
	}

	ids := make([]string, len(tickets))
	for i, t := range tickets {
		ids[i] = t.TicketID
	}

	return e.JSON(http.StatusCreated, map[string]any{
		"ticket_ids": ids,
		"count":      len(ids),
	})
}
