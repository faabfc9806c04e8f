package services

import (
	"context"

	"ticketdesk/cache"
	"ticketdesk/models"

	log "github.com/sirupsen/logrus"
)

type EventStore interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListTicketTypes(ctx context.Context, eventID string) ([]models.TicketType, error)
}

// EventService serves the public event catalog and each event's admission
// tiers through a read-through cache. Cache misses and cache errors both fall
// back to the store; a broken cache degrades to slower reads, never to failed
// ones.
type EventService struct {
	store EventStore
	cache cache.Cache
}

func NewEventService(store EventStore, c cache.Cache) *EventService {
	return &EventService{store: store, cache: c}
}

const eventsCacheKey = "events"

func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	if s.cache != nil {
		var cached []models.Event
		hit, err := s.cache.Get(ctx, eventsCacheKey, &cached)
		if err != nil {
			log.WithError(err).Warn("event cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, eventsCacheKey, events); err != nil {
			log.WithError(err).Warn("event cache write failed")
		}
	}
	return events, nil
}

// InvalidateEvents drops the catalog cache, e.g. after an event edit.
func (s *EventService) InvalidateEvents(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, eventsCacheKey)
}

func ticketTypesCacheKey(eventID string) string {
	return "tickets_" + eventID
}

// ListTicketTypes returns the admission tiers of one event, cached per event.
func (s *EventService) ListTicketTypes(ctx context.Context, eventID string) ([]models.TicketType, error) {
	key := ticketTypesCacheKey(eventID)

	if s.cache != nil {
		var cached []models.TicketType
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.WithError(err).Warn("ticket type cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	types, err := s.store.ListTicketTypes(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, types); err != nil {
			log.WithError(err).Warn("ticket type cache write failed")
		}
	}
	return types, nil
}

// InvalidateTicketTypes drops one event's tier cache.
func (s *EventService) InvalidateTicketTypes(ctx context.Context, eventID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, ticketTypesCacheKey(eventID))
}
