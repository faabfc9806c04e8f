package handlers

import (
	"net/http"
	"strings"

	"ticketdesk/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type NotifyHandler struct {
	notifyService *services.NotifyService
}

func NewNotifyHandler(notifyService *services.NotifyService) *NotifyHandler {
	return &NotifyHandler{notifyService: notifyService}
}

type sendTicketRequest struct {
	TicketID string `json:"ticket_id"`
}

// SendTicket handles POST /api/send-ticket. The service enforces the
// send-once contract; a repeat call comes back as a 409.
func (h *NotifyHandler) SendTicket(e *core.RequestEvent) error {
	req := sendTicketRequest{}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}

	req.TicketID = strings.TrimSpace(req.TicketID)
	if req.TicketID == "" {
		return apis.NewBadRequestError("ticket_id is required", nil)
	}

	if err := h.notifyService.SendTicket(e.Request.Context(), req.TicketID); err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"ticket_id": req.TicketID,
		"sent":      true,
	})
}
