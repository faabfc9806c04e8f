package models

import "github.com/shopspring/decimal"

// OrderItem is one requested admission in a placed order. Seat number and
// document URL are always empty at this point; they are filled in later by
// seat assignment.
type OrderItem struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	EventID  string          `json:"event_id"`
	Category Category        `json:"category"`
	Price    decimal.Decimal `json:"price"`
}
