package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket categories match the select values of the tickets collection.
type Category string

const (
	CategorySilver     Category = "SILVER"
	CategorySilverPlus Category = "SILVER PLUS"
	CategoryGold       Category = "GOLD"
	CategoryGoldPlus   Category = "GOLD PLUS"
	CategoryDiamond    Category = "DIAMOND"
	CategoryPlatinum   Category = "PLATINUM"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySilver, CategorySilverPlus, CategoryGold, CategoryGoldPlus,
		CategoryDiamond, CategoryPlatinum:
		return true
	}
	return false
}

// Ticket statuses. USED is terminal.
const (
	StatusConfirmed = "CONFIRMED"
	StatusUsed      = "USED"
)

type Ticket struct {
	TicketID     string          `json:"ticket_id"`
	SerialNumber string          `json:"serial_number"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Category     Category        `json:"category"`
	EventID      string          `json:"event_id"`
	SeatNumber   string          `json:"seat_number"` // empty until assigned
	Status       string          `json:"status"`
	TicketSent   bool            `json:"ticket_sent"`
	TicketPDFURL string          `json:"ticket_pdf_url"` // empty until the document is generated
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`

	Event *Event `json:"event,omitempty"`
}

// TicketRow is the admin listing projection: a ticket joined with its
// event name plus the booking date pre-formatted for display and export.
type TicketRow struct {
	TicketID     string          `json:"ticket_id"`
	SerialNumber string          `json:"serial_number"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Category     Category        `json:"category"`
	EventName    string          `json:"event_name"`
	BookingDate  string          `json:"booking_date"`
	SeatNumber   string          `json:"seat_number"`
	Status       string          `json:"status"`
	TicketSent   bool            `json:"ticket_sent"`
	TicketPDFURL string          `json:"ticket_pdf_url"`
	Price        decimal.Decimal `json:"price"`
}

// BookingDateFormat is the display format used in the dashboard table,
// the listing filter haystack and the CSV export.
const BookingDateFormat = "02 Jan 2006"
