package services

import (
	"context"
	"encoding/json"
	"testing"

	"ticketdesk/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-memory stand-in for the redis cache.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func TestEventService_ListEvents_ReadThrough(t *testing.T) {
	store := new(mockTicketStore)
	store.On("ListEvents", mock.Anything).
		Return([]models.Event{{ID: "evt-1", Name: "Nirvana"}}, nil).
		Once()

	svc := NewEventService(store, newFakeCache())

	first, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Second read is served from the cache; the store is hit exactly once.
	second, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	store.AssertNumberOfCalls(t, "ListEvents", 1)
}

func TestEventService_ListEvents_NilCache(t *testing.T) {
	store := new(mockTicketStore)
	store.On("ListEvents", mock.Anything).
		Return([]models.Event{{ID: "evt-1", Name: "Nirvana"}}, nil)

	svc := NewEventService(store, nil)

	events, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestEventService_ListTicketTypes_ReadThrough(t *testing.T) {
	store := new(mockTicketStore)
	store.On("ListTicketTypes", mock.Anything, "evt-1").
		Return([]models.TicketType{
			{ID: "tt-1", EventID: "evt-1", Name: "Gold", Category: models.CategoryGold,
				Price: decimal.NewFromInt(2500),
				Features: []models.Feature{
					{Label: "Front section", Included: true},
					{Label: "Lounge access", Included: false},
				}},
		}, nil).
		Once()

	svc := NewEventService(store, newFakeCache())

	first, err := svc.ListTicketTypes(context.Background(), "evt-1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, models.CategoryGold, first[0].Category)

	second, err := svc.ListTicketTypes(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	store.AssertNumberOfCalls(t, "ListTicketTypes", 1)
}

func TestEventService_ListTicketTypes_CachedPerEvent(t *testing.T) {
	store := new(mockTicketStore)
	store.On("ListTicketTypes", mock.Anything, "evt-1").
		Return([]models.TicketType{{ID: "tt-1", EventID: "evt-1", Name: "Gold"}}, nil).
		Once()
	store.On("ListTicketTypes", mock.Anything, "evt-2").
		Return([]models.TicketType{{ID: "tt-2", EventID: "evt-2", Name: "Silver"}}, nil).
		Once()

	c := newFakeCache()
	svc := NewEventService(store, c)

	_, err := svc.ListTicketTypes(context.Background(), "evt-1")
	require.NoError(t, err)
	_, err = svc.ListTicketTypes(context.Background(), "evt-2")
	require.NoError(t, err)

	// One cache entry per event, so invalidating one leaves the other warm.
	assert.Contains(t, c.data, "tickets_evt-1")
	assert.Contains(t, c.data, "tickets_evt-2")
	require.NoError(t, svc.InvalidateTicketTypes(context.Background(), "evt-1"))
	assert.NotContains(t, c.data, "tickets_evt-1")
	assert.Contains(t, c.data, "tickets_evt-2")
}

func TestEventService_InvalidateEvents(t *testing.T) {
	store := new(mockTicketStore)
	store.On("ListEvents", mock.Anything).
		Return([]models.Event{{ID: "evt-1", Name: "Nirvana"}}, nil).
		Twice()

	c := newFakeCache()
	svc := NewEventService(store, c)

	_, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateEvents(context.Background()))

	_, err = svc.ListEvents(context.Background())
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "ListEvents", 2)
}
