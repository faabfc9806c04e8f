package services

import (
	"context"
	"time"

	"ticketdesk/utils"

	pubnub "github.com/pubnub/go"
	log "github.com/sirupsen/logrus"
)

// CheckinPublisher fans check-in events out to live dashboards.
type CheckinPublisher interface {
	PublishCheckin(ctx context.Context, ticketID, seatNumber string) error
}

// PubNubPublisher pushes check-in events to the configured PubNub channel,
// behind a circuit breaker so a flaky feed never stalls the gate.
type PubNubPublisher struct {
	client  *pubnub.PubNub
	channel string
	breaker *utils.CircuitBreaker
}

func NewPubNubPublisher(client *pubnub.PubNub, channel string) *PubNubPublisher {
	return &PubNubPublisher{
		client:  client,
		channel: channel,
		breaker: utils.NewCircuitBreaker("pubnub"),
	}
}

func (p *PubNubPublisher) PublishCheckin(ctx context.Context, ticketID, seatNumber string) error {
	return p.breaker.Execute(ctx, func() error {
		_, _, err := p.client.Publish().
			Channel(p.channel).
			Message(map[string]any{
				"type":        "checkin",
				"ticket_id":   ticketID,
				"seat_number": seatNumber,
				"at":          time.Now().UTC().Format(time.RFC3339),
			}).
			Execute()
		if err != nil {
			log.WithError(err).WithField("ticket_id", ticketID).
				Warn("checkin publish failed")
		}
		return err
	})
}
