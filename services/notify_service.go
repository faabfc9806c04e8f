package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"ticketdesk/internal/status"
	"ticketdesk/models"
	"ticketdesk/monitoring"
	"ticketdesk/utils"

	"github.com/pocketbase/pocketbase/tools/mailer"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type NotifyStore interface {
	GetTicketByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error)
	MarkSent(ctx context.Context, ticketID string) error
}

// DocumentFetcher reads back an uploaded ticket document for attachment.
type DocumentFetcher interface {
	DocumentKey(ticketID string) string
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// NotifyService emails each ticket to its holder at most once. Before
// handing the message to the mailer it records a send intent in redis; if
// the process dies between delivery and flag update, the lingering intent
// marks the ticket for manual review instead of a silent duplicate.
type NotifyService struct {
	store     NotifyStore
	fetcher   DocumentFetcher
	mail      func() mailer.Mailer
	rdb       *redis.Client
	monitor   *monitoring.Monitor
	breaker   *utils.CircuitBreaker
	sender    mail.Address
	intentTTL time.Duration
}

func NewNotifyService(
	store NotifyStore,
	fetcher DocumentFetcher,
	mailClient func() mailer.Mailer,
	rdb *redis.Client,
	monitor *monitoring.Monitor,
	senderName, senderAddress string,
	intentTTL time.Duration,
) *NotifyService {
	return &NotifyService{
		store:     store,
		fetcher:   fetcher,
		mail:      mailClient,
		rdb:       rdb,
		monitor:   monitor,
		breaker:   utils.NewCircuitBreaker("mailer"),
		sender:    mail.Address{Name: senderName, Address: senderAddress},
		intentTTL: intentTTL,
	}
}

func sendIntentKey(ticketID string) string {
	return "send:intent:" + ticketID
}

// SendTicket delivers the ticket document to the holder and flips the sent
// flag. Preconditions are checked in order: the ticket must exist, must have
// a document, and must not have been sent already.
func (s *NotifyService) SendTicket(ctx context.Context, ticketID string) error {
	ticket, err := s.store.GetTicketByTicketID(ctx, ticketID)
	if err != nil {
		s.monitor.TrackTicketEmail("not_found")
		return err
	}

	if ticket.TicketPDFURL == "" {
		s.monitor.TrackTicketEmail("no_document")
		return fmt.Errorf("%w: ticket %s has no document", status.ErrDocumentMissing, ticketID)
	}

	if ticket.TicketSent {
		s.monitor.TrackTicketEmail("already_sent")
		return fmt.Errorf("%w: ticket %s", status.ErrTicketAlreadySent, ticketID)
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, sendIntentKey(ticketID), time.Now().UTC().Format(time.RFC3339), s.intentTTL).Err(); err != nil {
			log.WithError(err).Warn("send intent not recorded")
		}
	}

	message := s.buildMessage(ctx, ticket)

	err = s.breaker.Execute(ctx, func() error {
		return s.mail().Send(message)
	})
	if err != nil {
		s.clearIntent(ctx, ticketID)
		s.monitor.TrackTicketEmail("delivery_error")
		return fmt.Errorf("%w: %v", status.ErrDeliveryFailed, err)
	}

	s.monitor.TrackTicketEmail("success")
	log.WithFields(log.Fields{
		"ticket_id": ticketID,
		"email":     ticket.Email,
	}).Info("ticket emailed")

	if err := s.store.MarkSent(ctx, ticketID); err != nil {
		// The mail went out; a failed flag update must not surface as a
		// delivery error. The intent key stays behind for reconciliation.
		log.WithError(err).WithField("ticket_id", ticketID).
			Warn("ticket delivered but sent flag not persisted")
		return nil
	}

	s.clearIntent(ctx, ticketID)
	return nil
}

func (s *NotifyService) buildMessage(ctx context.Context, ticket *models.Ticket) *mailer.Message {
	eventName := "your event"
	if ticket.Event != nil {
		eventName = ticket.Event.Name
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<p>Hi %s,</p>", ticket.Name))
	body.WriteString(fmt.Sprintf("<p>Your ticket for <strong>%s</strong> is attached.</p>", eventName))
	if ticket.SeatNumber != "" {
		body.WriteString(fmt.Sprintf("<p>Seat: <strong>%s</strong></p>", ticket.SeatNumber))
	}
	body.WriteString(fmt.Sprintf(`<p>You can also download it here: <a href="%s">%s</a></p>`,
		ticket.TicketPDFURL, ticket.TicketPDFURL))
	body.WriteString("<p>Please present the QR code at the entrance.</p>")

	message := &mailer.Message{
		From:    s.sender,
		To:      []mail.Address{{Name: ticket.Name, Address: ticket.Email}},
		Subject: fmt.Sprintf("Your ticket for %s", eventName),
		HTML:    body.String(),
	}

	// Attach the document when the object store has it; otherwise the mail
	// still carries the download link.
	if s.fetcher != nil {
		key := s.fetcher.DocumentKey(ticket.TicketID)
		if content, err := s.fetcher.Fetch(ctx, key); err == nil {
			message.Attachments = map[string]io.Reader{
				fmt.Sprintf("ticket-%s.png", ticket.TicketID): bytes.NewReader(content),
			}
		} else {
			log.WithError(err).WithField("ticket_id", ticket.TicketID).
				Warn("document attachment skipped")
		}
	}

	return message
}

func (s *NotifyService) clearIntent(ctx context.Context, ticketID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, sendIntentKey(ticketID)).Err(); err != nil {
		log.WithError(err).Warn("send intent not cleared")
	}
}

// ReconcileSendIntents periodically reports lingering send intents, i.e.
// tickets whose mail may have gone out without the sent flag sticking.
// It logs for operator review and clears intents whose flag did stick.
func (s *NotifyService) ReconcileSendIntents(ctx context.Context, interval time.Duration) {
	if s.rdb == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reconcileOnce(ctx)
		}
	}
}

func (s *NotifyService) reconcileOnce(ctx context.Context) {
	iter := s.rdb.Scan(ctx, 0, sendIntentKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ticketID := strings.TrimPrefix(key, sendIntentKey(""))

		ticket, err := s.store.GetTicketByTicketID(ctx, ticketID)
		if err != nil {
			if errors.Is(err, status.ErrTicketNotFound) {
				s.rdb.Del(ctx, key)
			}
			continue
		}

		if ticket.TicketSent {
			s.rdb.Del(ctx, key)
			continue
		}

		log.WithField("ticket_id", ticketID).
			Warn("unresolved send intent: mail may have been delivered without sent flag")
	}
	if err := iter.Err(); err != nil {
		log.WithError(err).Warn("send intent scan failed")
	}
}
