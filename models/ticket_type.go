package models

import "github.com/shopspring/decimal"

// TicketType is one purchasable admission tier of an event (e.g. GOLD at a
// given price with its feature list). Tickets reference a category; ticket
// types describe what each category offers for a specific event.
type TicketType struct {
	ID       string          `json:"ticket_type_id"`
	EventID  string          `json:"event_id"`
	Name     string          `json:"name"`
	Category Category        `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Features []Feature       `json:"features,omitempty"`
}

type Feature struct {
	Label    string `json:"label"`
	Included bool   `json:"included"`
}
