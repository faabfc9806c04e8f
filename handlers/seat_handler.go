package handlers

import (
	"net/http"
	"strings"

	"ticketdesk/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type SeatHandler struct {
	seatService *services.SeatService
}

func NewSeatHandler(seatService *services.SeatService) *SeatHandler {
	return &SeatHandler{seatService: seatService}
}

type assignSeatRequest struct {
	TicketID   string `json:"ticket_id"`
	SeatNumber string `json:"seat_number"`
}

// AssignSeat handles POST /api/seat-assign.
func (h *SeatHandler) AssignSeat(e *core.RequestEvent) error {
	req := assignSeatRequest{}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}

	req.TicketID = strings.TrimSpace(req.TicketID)
	req.SeatNumber = strings.TrimSpace(req.SeatNumber)
	if req.TicketID == "" || req.SeatNumber == "" {
		return apis.NewBadRequestError("ticket_id and seat_number are required", nil)
	}

	ticket, err := h.seatService.AssignSeat(e.Request.Context(), req.TicketID, req.SeatNumber)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"ticket_id":      ticket.TicketID,
		"seat_number":    ticket.SeatNumber,
		"ticket_pdf_url": ticket.TicketPDFURL,
	})
}
