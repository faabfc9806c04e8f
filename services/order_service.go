package services

import (
	"context"
	"fmt"
	"strings"

	"ticketdesk/internal/status"
	"ticketdesk/models"
	"ticketdesk/utils"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type OrderStore interface {
	InsertTickets(ctx context.Context, tickets []models.Ticket) error
}

// OrderService turns validated order items into CONFIRMED tickets with fresh
// ticket ids and serial numbers.
type OrderService struct {
	store        OrderStore
	serialPrefix string
}

func NewOrderService(store OrderStore, serialPrefix string) *OrderService {
	return &OrderService{store: store, serialPrefix: serialPrefix}
}

// PlaceOrder validates every item up front, then inserts the whole order in
// one transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, items []models.OrderItem) ([]models.Ticket, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty order", status.ErrInvalidOrder)
	}

	for i, item := range items {
		if err := validateItem(item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	tickets := make([]models.Ticket, len(items))
	for i, item := range items {
		serial, err := utils.GenerateSerialNumber(s.serialPrefix, 6)
		if err != nil {
			return nil, fmt.Errorf("issue serial: %w", err)
		}
		tickets[i] = models.Ticket{
			TicketID:     uuid.NewString(),
			SerialNumber: serial,
			Name:         strings.TrimSpace(item.Name),
			Email:        strings.TrimSpace(item.Email),
			Phone:        strings.TrimSpace(item.Phone),
			Category:     item.Category,
			EventID:      item.EventID,
			Status:       models.StatusConfirmed,
			TicketSent:   false,
			Price:        item.Price,
		}
	}

	if err := s.store.InsertTickets(ctx, tickets); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"count": len(tickets),
		"email": tickets[0].Email,
	}).Info("order placed")
	return tickets, nil
}

func validateItem(item models.OrderItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", status.ErrInvalidOrder)
	}
	if !strings.Contains(item.Email, "@") {
		return fmt.Errorf("%w: invalid email", status.ErrInvalidOrder)
	}
	if item.EventID == "" {
		return fmt.Errorf("%w: event is required", status.ErrInvalidOrder)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%w: %s", status.ErrInvalidCategory, item.Category)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("%w: negative price", status.ErrInvalidOrder)
	}
	return nil
}
