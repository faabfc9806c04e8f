package handlers

import (
	"io"
	"net/http"
	"strings"

	"ticketdesk/models"
	"ticketdesk/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type CheckinHandler struct {
	checkinService *services.CheckinService
}

func NewCheckinHandler(checkinService *services.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: checkinService}
}

type scanRequest struct {
	TicketID string `json:"ticket_id"`
}

// Scan handles POST /api/scan-ticket: resolve a scanned code without
// consuming the ticket, so the operator sees holder and seat first.
func (h *CheckinHandler) Scan(e *core.RequestEvent) error {
	req := scanRequest{}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}

	req.TicketID = strings.TrimSpace(req.TicketID)
	if req.TicketID == "" {
		return apis.NewBadRequestError("ticket_id is required", nil)
	}

	ticket, err := h.checkinService.Lookup(e.Request.Context(), req.TicketID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, ticketResponse(ticket))
}

// MarkUsed handles POST /api/mark-used: the one-way CONFIRMED -> USED flip.
func (h *CheckinHandler) MarkUsed(e *core.RequestEvent) error {
	req := scanRequest{}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}

	req.TicketID = strings.TrimSpace(req.TicketID)
	if req.TicketID == "" {
		return apis.NewBadRequestError("ticket_id is required", nil)
	}

	ticket, err := h.checkinService.MarkUsed(e.Request.Context(), req.TicketID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, ticketResponse(ticket))
}

// DecodeFrame handles POST /api/scan-ticket/decode: a camera frame upload
// from gate clients that cannot decode QR locally.
func (h *CheckinHandler) DecodeFrame(e *core.RequestEvent) error {
	file, _, err := e.Request.FormFile("frame")
	if err != nil {
		return apis.NewBadRequestError("frame file is required", err)
	}
	defer file.Close()

	frame, err := io.ReadAll(file)
	if err != nil {
		return apis.NewBadRequestError("unreadable frame", err)
	}

	ticket, err := h.checkinService.DecodeFrame(e.Request.Context(), frame)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, ticketResponse(ticket))
}

func ticketResponse(t *models.Ticket) map[string]any {
	resp := map[string]any{
		"ticket_id":   t.TicketID,
		"name":        t.Name,
		"email":       t.Email,
		"category":    t.Category,
		"seat_number": t.SeatNumber,
		"status":      t.Status,
	}
	if t.Event != nil {
		resp["event"] = t.Event
	}
	return resp
}
