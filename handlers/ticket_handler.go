package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ticketdesk/services"

	"github.com/pocketbase/pocketbase/core"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// List handles GET /api/tickets with search, category, status, sort and page
// query parameters.
func (h *TicketHandler) List(e *core.RequestEvent) error {
	q := e.Request.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))

	listQuery := services.ListQuery{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Status:    q.Get("status"),
		SortField: q.Get("sort"),
		SortDir:   q.Get("dir"),
		Page:      page,
	}

	result, err := h.ticketService.ListTickets(e.Request.Context(), listQuery)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, result)
}

// Export handles GET /api/tickets/export. An optional comma-separated ids
// parameter restricts the export to selected tickets.
func (h *TicketHandler) Export(e *core.RequestEvent) error {
	var ids []string
	if raw := strings.TrimSpace(e.Request.URL.Query().Get("ids")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	data, err := h.ticketService.ExportCSV(e.Request.Context(), ids)
	if err != nil {
		return apiError(err)
	}

	filename := fmt.Sprintf("tickets-%s.csv", time.Now().UTC().Format("20060102-150405"))
	e.Response.Header().Set("Content-Type", "text/csv")
	e.Response.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	e.Response.WriteHeader(http.StatusOK)
	_, err = e.Response.Write(data)
	return err
}
