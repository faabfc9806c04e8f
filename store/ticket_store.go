// Package store is the data-access gateway over the tickets, events and
// admins collections. All one-way state transitions (seat assignment,
// check-in, sent flag) go through conditional single-row updates so that
// concurrent attempts fail cleanly instead of racing.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"ticketdesk/internal/status"
	"ticketdesk/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/shopspring/decimal"
)

type Store struct {
	app core.App
}

func New(app core.App) *Store {
	return &Store{app: app}
}

// GetTicketByTicketID resolves a ticket by its public ticket_id (the QR
// payload), with its event expanded.
func (s *Store) GetTicketByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"tickets",
		"ticket_id = {:ticketId}",
		dbx.Params{"ticketId": ticketID},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", status.ErrTicketNotFound, ticketID)
	}

	ticket := ticketFromRecord(record)

	if errs := s.app.ExpandRecord(record, []string{"event_id"}, nil); len(errs) == 0 {
		if eventRecord := record.ExpandedOne("event_id"); eventRecord != nil {
			ticket.Event = eventFromRecord(eventRecord)
		}
	}

	return ticket, nil
}

// AssignSeat sets seat_number and ticket_pdf_url in a single conditional
// update. The WHERE clause only matches unassigned tickets, so a concurrent
// assignment that got there first surfaces as ErrSeatAlreadyAssigned.
func (s *Store) AssignSeat(ctx context.Context, ticketID, seatNumber, documentURL string) error {
	res, err := s.app.DB().NewQuery(`
		UPDATE tickets
		SET seat_number = {:seat}, ticket_pdf_url = {:url}
		WHERE ticket_id = {:ticketId}
		  AND (seat_number IS NULL OR seat_number = '')
	`).Bind(dbx.Params{
		"seat":     seatNumber,
		"url":      documentURL,
		"ticketId": ticketID,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("assign seat: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign seat: %w", err)
	}
	if n == 0 {
		if _, err := s.GetTicketByTicketID(ctx, ticketID); err != nil {
			return err
		}
		return status.ErrSeatAlreadyAssigned
	}
	return nil
}

// MarkUsed transitions a ticket CONFIRMED -> USED. USED is terminal: a
// repeated call reports ErrTicketAlreadyUsed and leaves the row untouched.
func (s *Store) MarkUsed(ctx context.Context, ticketID string) error {
	res, err := s.app.DB().NewQuery(`
		UPDATE tickets
		SET status = {:used}
		WHERE ticket_id = {:ticketId} AND status = {:confirmed}
	`).Bind(dbx.Params{
		"used":      models.StatusUsed,
		"confirmed": models.StatusConfirmed,
		"ticketId":  ticketID,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("mark used: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark used: %w", err)
	}
	if n == 0 {
		ticket, err := s.GetTicketByTicketID(ctx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Status == models.StatusUsed {
			return status.ErrTicketAlreadyUsed
		}
		return status.ErrNoRowsUpdated
	}
	return nil
}

// MarkSent flips ticket_sent exactly once, and only for tickets that already
// have a generated document.
func (s *Store) MarkSent(ctx context.Context, ticketID string) error {
	res, err := s.app.DB().NewQuery(`
		UPDATE tickets
		SET ticket_sent = TRUE
		WHERE ticket_id = {:ticketId}
		  AND ticket_sent = FALSE
		  AND ticket_pdf_url IS NOT NULL
		  AND ticket_pdf_url != ''
	`).Bind(dbx.Params{"ticketId": ticketID}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	if n == 0 {
		ticket, err := s.GetTicketByTicketID(ctx, ticketID)
		if err != nil {
			return err
		}
		if ticket.TicketSent {
			return status.ErrTicketAlreadySent
		}
		if ticket.TicketPDFURL == "" {
			return status.ErrDocumentMissing
		}
		return status.ErrNoRowsUpdated
	}
	return nil
}

type ticketRowData struct {
	TicketID     string         `db:"ticket_id"`
	SerialNumber string         `db:"serial_number"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Phone        string         `db:"phone"`
	Category     string         `db:"category"`
	SeatNumber   string         `db:"seat_number"`
	Status       string         `db:"status"`
	TicketSent   bool           `db:"ticket_sent"`
	TicketPDFURL string         `db:"ticket_pdf_url"`
	Price        float64        `db:"price"`
	Created      types.DateTime `db:"created"`
	EventName    string         `db:"event_name"`
}

// ListTicketRows returns every ticket joined with its event name, in the
// fixed fetch order (holder email) that listing sorts tie-break against.
func (s *Store) ListTicketRows(ctx context.Context) ([]models.TicketRow, error) {
	query := `
		SELECT
			t.ticket_id,
			COALESCE(t.serial_number, '') AS serial_number,
			t.name,
			t.email,
			t.phone,
			t.category,
			COALESCE(t.seat_number, '') AS seat_number,
			t.status,
			t.ticket_sent,
			COALESCE(t.ticket_pdf_url, '') AS ticket_pdf_url,
			t.price,
			t.created,
			COALESCE(e.name, 'Unknown Event') AS event_name
		FROM tickets t
		LEFT JOIN events e ON t.event_id = e.id
		ORDER BY t.email ASC
	`

	data := []ticketRowData{}
	if err := s.app.DB().NewQuery(query).WithContext(ctx).All(&data); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	rows := make([]models.TicketRow, len(data))
	for i, d := range data {
		rows[i] = models.TicketRow{
			TicketID:     d.TicketID,
			SerialNumber: d.SerialNumber,
			Name:         d.Name,
			Email:        d.Email,
			Phone:        d.Phone,
			Category:     models.Category(d.Category),
			EventName:    d.EventName,
			BookingDate:  d.Created.Time().Format(models.BookingDateFormat),
			SeatNumber:   d.SeatNumber,
			Status:       d.Status,
			TicketSent:   d.TicketSent,
			TicketPDFURL: d.TicketPDFURL,
			Price:        decimal.NewFromFloat(d.Price),
		}
	}
	return rows, nil
}

type eventRowData struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	Location        string `db:"location"`
	Date            string `db:"date"`
	StartTime       string `db:"start_time"`
	EndTime         string `db:"end_time"`
	EntryTime       string `db:"entry_time"`
	Description     string `db:"description"`
	FeaturedArtists string `db:"featured_artists"`
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, name, location, date, start_time, end_time, entry_time,
		       description, featured_artists
		FROM events
		ORDER BY date ASC
	`

	data := []eventRowData{}
	if err := s.app.DB().NewQuery(query).WithContext(ctx).All(&data); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]models.Event, len(data))
	for i, d := range data {
		events[i] = models.Event{
			ID:              d.ID,
			Name:            d.Name,
			Location:        d.Location,
			Date:            d.Date,
			StartTime:       d.StartTime,
			EndTime:         d.EndTime,
			EntryTime:       d.EntryTime,
			Description:     d.Description,
			FeaturedArtists: d.FeaturedArtists,
		}
	}
	return events, nil
}

type ticketTypeRowData struct {
	ID       string  `db:"id"`
	EventID  string  `db:"event_id"`
	Name     string  `db:"name"`
	Category string  `db:"category"`
	Price    float64 `db:"price"`
	Features string  `db:"features"`
}

// ListTicketTypes returns the admission tiers of one event, cheapest first.
func (s *Store) ListTicketTypes(ctx context.Context, eventID string) ([]models.TicketType, error) {
	query := `
		SELECT id, event_id, name, category, price, COALESCE(features, '') AS features
		FROM ticket_types
		WHERE event_id = {:eventId}
		ORDER BY price ASC
	`

	data := []ticketTypeRowData{}
	err := s.app.DB().NewQuery(query).
		Bind(dbx.Params{"eventId": eventID}).
		WithContext(ctx).
		All(&data)
	if err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}

	types := make([]models.TicketType, len(data))
	for i, d := range data {
		types[i] = models.TicketType{
			ID:       d.ID,
			EventID:  d.EventID,
			Name:     d.Name,
			Category: models.Category(d.Category),
			Price:    decimal.NewFromFloat(d.Price),
		}
		if d.Features != "" && d.Features != "null" {
			if err := json.Unmarshal([]byte(d.Features), &types[i].Features); err != nil {
				return nil, fmt.Errorf("ticket type %s features: %w", d.ID, err)
			}
		}
	}
	return types, nil
}

func (s *Store) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"admins",
		"email = {:email}",
		dbx.Params{"email": email},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", status.ErrAdminNotFound, email)
	}

	return &models.Admin{
		Email: record.GetString("email"),
		Name:  record.GetString("name"),
	}, nil
}

// InsertTickets persists a placed order atomically: either every ticket of
// the order is created or none.
func (s *Store) InsertTickets(ctx context.Context, tickets []models.Ticket) error {
	return s.app.RunInTransaction(func(txApp core.App) error {
		collection, err := txApp.FindCollectionByNameOrId("tickets")
		if err != nil {
			return fmt.Errorf("insert tickets: %w", err)
		}

		for _, t := range tickets {
			record := core.NewRecord(collection)
			record.Set("ticket_id", t.TicketID)
			record.Set("serial_number", t.SerialNumber)
			record.Set("name", t.Name)
			record.Set("email", t.Email)
			record.Set("phone", t.Phone)
			record.Set("category", string(t.Category))
			record.Set("event_id", t.EventID)
			record.Set("status", t.Status)
			record.Set("ticket_sent", t.TicketSent)
			record.Set("price", t.Price.InexactFloat64())

			if err := txApp.Save(record); err != nil {
				return fmt.Errorf("insert ticket %s: %w", t.TicketID, err)
			}
		}
		return nil
	})
}

func ticketFromRecord(r *core.Record) *models.Ticket {
	return &models.Ticket{
		TicketID:     r.GetString("ticket_id"),
		SerialNumber: r.GetString("serial_number"),
		Name:         r.GetString("name"),
		Email:        r.GetString("email"),
		Phone:        r.GetString("phone"),
		Category:     models.Category(r.GetString("category")),
		EventID:      r.GetString("event_id"),
		SeatNumber:   r.GetString("seat_number"),
		Status:       r.GetString("status"),
		TicketSent:   r.GetBool("ticket_sent"),
		TicketPDFURL: r.GetString("ticket_pdf_url"),
		Price:        decimal.NewFromFloat(r.GetFloat("price")),
		CreatedAt:    r.GetDateTime("created").Time(),
	}
}

func eventFromRecord(r *core.Record) *models.Event {
	return &models.Event{
		ID:              r.Id,
		Name:            r.GetString("name"),
		Location:        r.GetString("location"),
		Date:            r.GetString("date"),
		StartTime:       r.GetString("start_time"),
		EndTime:         r.GetString("end_time"),
		EntryTime:       r.GetString("entry_time"),
		Description:     r.GetString("description"),
		FeaturedArtists: r.GetString("featured_artists"),
	}
}
