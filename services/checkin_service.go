package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"ticketdesk/docgen"
	"ticketdesk/internal/status"
	"ticketdesk/models"
	"ticketdesk/monitoring"

	log "github.com/sirupsen/logrus"
)

type CheckinStore interface {
	GetTicketByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error)
	MarkUsed(ctx context.Context, ticketID string) error
}

// CheckinService drives the entry gate: resolve a scanned ticket, then flip
// it CONFIRMED -> USED exactly once.
type CheckinService struct {
	store     CheckinStore
	publisher CheckinPublisher
	monitor   *monitoring.Monitor
}

func NewCheckinService(store CheckinStore, publisher CheckinPublisher, monitor *monitoring.Monitor) *CheckinService {
	return &CheckinService{
		store:     store,
		publisher: publisher,
		monitor:   monitor,
	}
}

// Lookup returns the scanned ticket with its event, without changing state.
// The gate UI shows holder and seat before the operator confirms entry.
func (s *CheckinService) Lookup(ctx context.Context, ticketID string) (*models.Ticket, error) {
	ticket, err := s.store.GetTicketByTicketID(ctx, ticketID)
	if err != nil {
		s.monitor.TrackCheckin("not_found")
		return nil, err
	}
	return ticket, nil
}

// MarkUsed consumes the ticket. The update is conditional on CONFIRMED, so a
// second scan of the same ticket reports ErrTicketAlreadyUsed.
func (s *CheckinService) MarkUsed(ctx context.Context, ticketID string) (*models.Ticket, error) {
	if err := s.store.MarkUsed(ctx, ticketID); err != nil {
		switch {
		case errors.Is(err, status.ErrTicketAlreadyUsed):
			s.monitor.TrackCheckin("already_used")
		case errors.Is(err, status.ErrTicketNotFound):
			s.monitor.TrackCheckin("not_found")
		default:
			s.monitor.TrackCheckin("error")
		}
		return nil, err
	}

	ticket, err := s.store.GetTicketByTicketID(ctx, ticketID)
	if err != nil {
		// The transition already committed; a failed read-back must not turn
		// a completed check-in into an error at the gate.
		log.WithError(err).WithField("ticket_id", ticketID).
			Warn("checked-in ticket read-back failed")
		ticket = &models.Ticket{TicketID: ticketID, Status: models.StatusUsed}
	}

	s.monitor.TrackCheckin("success")
	log.WithFields(log.Fields{
		"ticket_id":   ticketID,
		"seat_number": ticket.SeatNumber,
	}).Info("ticket checked in")

	if s.publisher != nil {
		// Live feed is best-effort; the check-in already committed.
		if err := s.publisher.PublishCheckin(ctx, ticketID, ticket.SeatNumber); err != nil {
			log.WithError(err).Warn("checkin feed publish skipped")
		}
	}

	return ticket, nil
}

// DecodeFrame extracts a ticket id from a camera frame uploaded by the gate
// client, then resolves it like a regular scan.
func (s *CheckinService) DecodeFrame(ctx context.Context, frame []byte) (*models.Ticket, error) {
	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable frame", status.ErrTicketNotFound)
	}

	ticketID, err := docgen.DecodeQR(img)
	if err != nil {
		return nil, fmt.Errorf("%w: no code in frame", status.ErrTicketNotFound)
	}

	return s.Lookup(ctx, ticketID)
}
