package services

import (
	"context"

	"ticketdesk/models"

	"github.com/pocketbase/pocketbase/tools/mailer"
	"github.com/stretchr/testify/mock"
)

type mockTicketStore struct {
	mock.Mock
}

func (m *mockTicketStore) GetTicketByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if t, ok := args.Get(0).(*models.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketStore) AssignSeat(ctx context.Context, ticketID, seatNumber, documentURL string) error {
	return m.Called(ctx, ticketID, seatNumber, documentURL).Error(0)
}

func (m *mockTicketStore) MarkUsed(ctx context.Context, ticketID string) error {
	return m.Called(ctx, ticketID).Error(0)
}

func (m *mockTicketStore) MarkSent(ctx context.Context, ticketID string) error {
	return m.Called(ctx, ticketID).Error(0)
}

func (m *mockTicketStore) ListTicketRows(ctx context.Context) ([]models.TicketRow, error) {
	args := m.Called(ctx)
	if rows, ok := args.Get(0).([]models.TicketRow); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if events, ok := args.Get(0).([]models.Event); ok {
		return events, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketStore) ListTicketTypes(ctx context.Context, eventID string) ([]models.TicketType, error) {
	args := m.Called(ctx, eventID)
	if types, ok := args.Get(0).([]models.TicketType); ok {
		return types, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketStore) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if a, ok := args.Get(0).(*models.Admin); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketStore) InsertTickets(ctx context.Context, tickets []models.Ticket) error {
	return m.Called(ctx, tickets).Error(0)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(ticket *models.Ticket, seatNumber string) ([]byte, error) {
	args := m.Called(ticket, seatNumber)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) DocumentKey(ticketID string) string {
	return m.Called(ticketID).String(0)
}

func (m *mockUploader) Upload(ctx context.Context, key string, content []byte) (string, error) {
	args := m.Called(ctx, key, content)
	return args.String(0), args.Error(1)
}

func (m *mockUploader) Fetch(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishCheckin(ctx context.Context, ticketID, seatNumber string) error {
	return m.Called(ctx, ticketID, seatNumber).Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(message *mailer.Message) error {
	return m.Called(message).Error(0)
}
