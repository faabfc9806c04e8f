package handlers

import (
	"net/http"

	"ticketdesk/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /api/events, served through the catalog cache.
func (h *EventHandler) List(e *core.RequestEvent) error {
	events, err := h.eventService.ListEvents(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"events": events})
}

// ListTicketTypes handles GET /api/events/{id}/ticket-types, served through
// the per-event tier cache.
func (h *EventHandler) ListTicketTypes(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("id")
	if eventID == "" {
		return apis.NewBadRequestError("event id is required", nil)
	}

	types, err := h.eventService.ListTicketTypes(e.Request.Context(), eventID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"ticket_types": types})
}
