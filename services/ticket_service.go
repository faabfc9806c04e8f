package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"ticketdesk/models"
)

type ListingStore interface {
	ListTicketRows(ctx context.Context) ([]models.TicketRow, error)
}

// ListQuery carries the listing parameters as they arrive from the admin UI.
type ListQuery struct {
	Search    string
	Category  string
	Status    string
	SortField string
	SortDir   string
	Page      int
}

// TicketPage is one page of the filtered, sorted listing.
type TicketPage struct {
	Tickets    []models.TicketRow `json:"tickets"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalRows  int                `json:"total_rows"`
	TotalPages int                `json:"total_pages"`
	HasPrev    bool               `json:"has_prev"`
	HasNext    bool               `json:"has_next"`
}

// TicketService serves the admin listing: free-text filter, per-column sort,
// fixed-size pages and CSV export.
type TicketService struct {
	store    ListingStore
	pageSize int
}

func NewTicketService(store ListingStore, pageSize int) *TicketService {
	return &TicketService{store: store, pageSize: pageSize}
}

func (s *TicketService) ListTickets(ctx context.Context, q ListQuery) (*TicketPage, error) {
	rows, err := s.store.ListTicketRows(ctx)
	if err != nil {
		return nil, err
	}

	rows = filterRows(rows, q)
	sortRows(rows, q.SortField, q.SortDir)

	total := len(rows)
	totalPages := (total + s.pageSize - 1) / s.pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * s.pageSize
	end := start + s.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &TicketPage{
		Tickets:    rows[start:end],
		Page:       page,
		PageSize:   s.pageSize,
		TotalRows:  total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}, nil
}

// filterRows applies the category and status filters, then the free-text
// search over holder, ticket and event fields.
func filterRows(rows []models.TicketRow, q ListQuery) []models.TicketRow {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := rows[:0:0]
	for _, r := range rows {
		if q.Category != "" && !strings.EqualFold(string(r.Category), q.Category) {
			continue
		}
		if q.Status != "" && !strings.EqualFold(r.Status, q.Status) {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r models.TicketRow, search string) bool {
	fields := []string{
		r.TicketID,
		r.SerialNumber,
		r.Name,
		r.Email,
		r.Phone,
		string(r.Category),
		r.EventName,
		r.BookingDate,
		r.SeatNumber,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// sortRows orders rows in place. Serial numbers compare by their numeric
// suffix with blanks sorting lowest; booking dates compare as dates. The
// sort is stable, so equal keys keep the fetch order.
func sortRows(rows []models.TicketRow, field, dir string) {
	if field == "" {
		return
	}
	desc := strings.EqualFold(dir, "desc")

	less := func(a, b models.TicketRow) bool { return false }

	switch field {
	case "serial_number":
		less = func(a, b models.TicketRow) bool {
			return serialValue(a.SerialNumber) < serialValue(b.SerialNumber)
		}
	case "name":
		less = func(a, b models.TicketRow) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "email":
		less = func(a, b models.TicketRow) bool { return strings.ToLower(a.Email) < strings.ToLower(b.Email) }
	case "category":
		less = func(a, b models.TicketRow) bool { return a.Category < b.Category }
	case "event_name":
		less = func(a, b models.TicketRow) bool { return strings.ToLower(a.EventName) < strings.ToLower(b.EventName) }
	case "booking_date":
		less = func(a, b models.TicketRow) bool {
			return bookingTime(a.BookingDate).Before(bookingTime(b.BookingDate))
		}
	case "seat_number":
		less = func(a, b models.TicketRow) bool { return a.SeatNumber < b.SeatNumber }
	case "status":
		less = func(a, b models.TicketRow) bool { return a.Status < b.Status }
	case "price":
		less = func(a, b models.TicketRow) bool { return a.Price.LessThan(b.Price) }
	default:
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// serialValue extracts the numeric part of a serial like "NIV004217".
// Missing or malformed serials sort below every real one.
func serialValue(serial string) int64 {
	digits := strings.TrimLeftFunc(serial, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if digits == "" {
		return -1
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return -1
	}
	return n
}

func bookingTime(s string) time.Time {
	t, err := time.Parse(models.BookingDateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

var csvHeader = []string{
	"ticket_id", "serial_number", "name", "email", "phone", "category",
	"event_name", "booking_date", "seat_number", "status", "ticket_sent",
	"ticket_pdf_url", "price",
}

// ExportCSV renders the listing as CSV with a fixed column order. Every
// field is quoted, with embedded quotes doubled. When ids is non-empty only
// those tickets are exported, in listing order.
func (s *TicketService) ExportCSV(ctx context.Context, ids []string) ([]byte, error) {
	rows, err := s.store.ListTicketRows(ctx)
	if err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		wanted := make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
		filtered := rows[:0:0]
		for _, r := range rows {
			if wanted[r.TicketID] {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	var b strings.Builder
	writeCSVRecord(&b, csvHeader)
	for _, r := range rows {
		writeCSVRecord(&b, []string{
			r.TicketID,
			r.SerialNumber,
			r.Name,
			r.Email,
			r.Phone,
			string(r.Category),
			r.EventName,
			r.BookingDate,
			r.SeatNumber,
			r.Status,
			fmt.Sprintf("%t", r.TicketSent),
			r.TicketPDFURL,
			r.Price.StringFixed(2),
		})
	}
	return []byte(b.String()), nil
}

// writeCSVRecord quotes every field unconditionally so spreadsheet imports
// never reinterpret phone numbers or serials.
func writeCSVRecord(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}
