package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketdesk/internal/status"
	"ticketdesk/models"
	"ticketdesk/monitoring"

	log "github.com/sirupsen/logrus"
)

// SeatTicketStore is the slice of the ticket store that seat assignment needs.
type SeatTicketStore interface {
	GetTicketByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error)
	AssignSeat(ctx context.Context, ticketID, seatNumber, documentURL string) error
}

// DocumentRenderer produces the printable ticket image for an assigned seat.
type DocumentRenderer interface {
	Render(ticket *models.Ticket, seatNumber string) ([]byte, error)
}

// DocumentUploader persists a rendered document and returns its public URL.
type DocumentUploader interface {
	DocumentKey(ticketID string) string
	Upload(ctx context.Context, key string, content []byte) (string, error)
}

// SeatService assigns seats one time per ticket. The rendered document is
// uploaded before the row is updated, so a ticket with a seat always has a
// fetchable document.
type SeatService struct {
	store    SeatTicketStore
	renderer DocumentRenderer
	uploader DocumentUploader
	monitor  *monitoring.Monitor
}

func NewSeatService(store SeatTicketStore, renderer DocumentRenderer, uploader DocumentUploader, monitor *monitoring.Monitor) *SeatService {
	return &SeatService{
		store:    store,
		renderer: renderer,
		uploader: uploader,
		monitor:  monitor,
	}
}

// AssignSeat renders and uploads the ticket document, then writes seat and
// document URL through a conditional update. A ticket that already holds a
// seat fails with ErrSeatAlreadyAssigned and keeps its original document.
func (s *SeatService) AssignSeat(ctx context.Context, ticketID, seatNumber string) (*models.Ticket, error) {
	ticket, err := s.store.GetTicketByTicketID(ctx, ticketID)
	if err != nil {
		s.monitor.TrackSeatAssignment("not_found")
		return nil, err
	}

	if ticket.SeatNumber != "" {
		s.monitor.TrackSeatAssignment("conflict")
		return nil, fmt.Errorf("%w: ticket %s already holds seat %s",
			status.ErrSeatAlreadyAssigned, ticketID, ticket.SeatNumber)
	}

	start := time.Now()
	document, err := s.renderer.Render(ticket, seatNumber)
	if err != nil {
		s.monitor.TrackSeatAssignment("render_error")
		return nil, fmt.Errorf("render document for %s: %w", ticketID, err)
	}
	s.monitor.ObserveRenderDuration(time.Since(start))

	key := s.uploader.DocumentKey(ticketID)
	url, err := s.uploader.Upload(ctx, key, document)
	if err != nil {
		s.monitor.TrackSeatAssignment("upload_error")
		return nil, fmt.Errorf("upload document for %s: %w", ticketID, err)
	}

	if err := s.store.AssignSeat(ctx, ticketID, seatNumber, url); err != nil {
		if errors.Is(err, status.ErrSeatAlreadyAssigned) {
			s.monitor.TrackSeatAssignment("conflict")
		} else {
			s.monitor.TrackSeatAssignment("persistence_error")
		}
		return nil, err
	}

	log.WithFields(log.Fields{
		"ticket_id":   ticketID,
		"seat_number": seatNumber,
	}).Info("seat assigned")
	s.monitor.TrackSeatAssignment("success")

	ticket.SeatNumber = seatNumber
	ticket.TicketPDFURL = url
	return ticket, nil
}
