package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCache_SetUsesConfiguredTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, 24*time.Hour)

	value := map[string]string{"name": "Nirvana"}
	data, _ := json.Marshal(value)

	mock.ExpectSet("events", data, 24*time.Hour).SetVal("OK")

	err := c.Set(context.Background(), "events", value)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_DefaultTTL(t *testing.T) {
	db, _ := redismock.NewClientMock()

	c := NewRedisCache(db, 0)

	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestRedisCache_GetHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)

	stored, _ := json.Marshal(map[string]string{"name": "Nirvana"})
	mock.ExpectGet("event_nirvana-2025").SetVal(string(stored))

	var dest map[string]string
	found, err := c.Get(context.Background(), "event_nirvana-2025", &dest)

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Nirvana", dest["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)

	mock.ExpectGet("events").RedisNil()

	var dest []string
	found, err := c.Get(context.Background(), "events", &dest)

	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)

	mock.ExpectDel("events").SetVal(1)

	err := c.Invalidate(context.Background(), "events")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
