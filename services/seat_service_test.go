package services

import (
	"context"
	"errors"
	"testing"

	"ticketdesk/internal/status"
	"ticketdesk/models"
	"ticketdesk/monitoring"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func unassignedTicket() *models.Ticket {
	return &models.Ticket{
		TicketID:   "tkt-1",
		Name:       "Divya Sharma",
		Email:      "divya@example.com",
		Category:   models.CategoryGold,
		Status:     models.StatusConfirmed,
		SeatNumber: "",
	}
}

func TestSeatService_AssignSeat(t *testing.T) {
	store := new(mockTicketStore)
	renderer := new(mockRenderer)
	uploader := new(mockUploader)

	store.On("GetTicketByTicketID", mock.Anything, "tkt-1").Return(unassignedTicket(), nil)
	renderer.On("Render", mock.Anything, "A12").Return([]byte("png-bytes"), nil)
	uploader.On("DocumentKey", "tkt-1").Return("tickets/ticket-tkt-1.png")
	uploader.On("Upload", mock.Anything, "tickets/ticket-tkt-1.png", []byte("png-bytes")).
		Return("https://cdn.example.com/tickets/ticket-tkt-1.png", nil)
	store.On("AssignSeat", mock.Anything, "tkt-1", "A12", "https://cdn.example.com/tickets/ticket-tkt-1.png").
		Return(nil)

	svc := NewSeatService(store, renderer, uploader, monitoring.NewMonitor(nil))
	ticket, err := svc.AssignSeat(context.Background(), "tkt-1", "A12")

	require.NoError(t, err)
	assert.Equal(t, "A12", ticket.SeatNumber)
	assert.Equal(t, "https://cdn.example.com/tickets/ticket-tkt-1.png", ticket.TicketPDFURL)
	store.AssertExpectations(t)
	renderer.AssertExpectations(t)
	uploader.AssertExpectations(t)
}

func TestSeatService_AssignSeat_AlreadyAssigned(t *testing.T) {
	store := new(mockTicketStore)
	renderer := new(mockRenderer)
	uploader := new(mockUploader)

	taken := unassignedTicket()
	taken.SeatNumber = "B7"
	taken.TicketPDFURL = "https://cdn.example.com/tickets/ticket-tkt-1.png"
	store.On("GetTicketByTicketID", mock.Anything, "tkt-1").Return(taken, nil)

	svc := NewSeatService(store, renderer, uploader, monitoring.NewMonitor(nil))
	_, err := svc.AssignSeat(context.Background(), "tkt-1", "A12")

	assert.ErrorIs(t, err, status.ErrSeatAlreadyAssigned)
	// No render, no upload: the stored document stays untouched.
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestSeatService_AssignSeat_ConcurrentConflict(t *testing.T) {
	store := new(mockTicketStore)
	renderer := new(mockRenderer)
	uploader := new(mockUploader)

	store.On("GetTicketByTicketID", mock.Anything, "tkt-1").Return(unassignedTicket(), nil)
	renderer.On("Render", mock.Anything, "A12").Return([]byte("png-bytes"), nil)
	uploader.On("DocumentKey", "tkt-1").Return("tickets/ticket-tkt-1.png")
	uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("https://cdn.example.com/tickets/ticket-tkt-1.png", nil)
	// Another assignment won between the read and the update.
	store.On("AssignSeat", mock.Anything, "tkt-1", "A12", mock.Anything).
		Return(status.ErrSeatAlreadyAssigned)

	svc := NewSeatService(store, renderer, uploader, monitoring.NewMonitor(nil))
	_, err := svc.AssignSeat(context.Background(), "tkt-1", "A12")

	assert.ErrorIs(t, err, status.ErrSeatAlreadyAssigned)
}

// seatAssignmentCount reads the outcome counter from the default registry.
func seatAssignmentCount(t *testing.T, outcome string) float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "ticketdesk_seat_assignments_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "status" && lp.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestSeatService_AssignSeat_StoreErrorCountsAsPersistenceError(t *testing.T) {
	store := new(mockTicketStore)
	renderer := new(mockRenderer)
	uploader := new(mockUploader)

	store.On("GetTicketByTicketID", mock.Anything, "tkt-1").Return(unassignedTicket(), nil)
	renderer.On("Render", mock.Anything, "A12").Return([]byte("png-bytes"), nil)
	uploader.On("DocumentKey", "tkt-1").Return("tickets/ticket-tkt-1.png")
	uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("https://cdn.example.com/tickets/ticket-tkt-1.png", nil)
	store.On("AssignSeat", mock.Anything, "tkt-1", "A12", mock.Anything).
		Return(errors.New("database is locked"))

	conflictBefore := seatAssignmentCount(t, "conflict")
	persistenceBefore := seatAssignmentCount(t, "persistence_error")

	svc := NewSeatService(store, renderer, uploader, monitoring.NewMonitor(nil))
	_, err := svc.AssignSeat(context.Background(), "tkt-1", "A12")

	require.Error(t, err)
	assert.NotErrorIs(t, err, status.ErrSeatAlreadyAssigned)

	// A DB failure is not a seat conflict.
	assert.Equal(t, persistenceBefore+1, seatAssignmentCount(t, "persistence_error"))
	assert.Equal(t, conflictBefore, seatAssignmentCount(t, "conflict"))
}

func TestSeatService_AssignSeat_NotFound(t *testing.T) {
	store := new(mockTicketStore)

	store.On("GetTicketByTicketID", mock.Anything, "missing").
		Return(nil, status.ErrTicketNotFound)

	svc := NewSeatService(store, new(mockRenderer), new(mockUploader), monitoring.NewMonitor(nil))
	_, err := svc.AssignSeat(context.Background(), "missing", "A12")

	assert.ErrorIs(t, err, status.ErrTicketNotFound)
}

func TestSeatService_AssignSeat_RenderError(t *testing.T) {
	store := new(mockTicketStore)
	renderer := new(mockRenderer)

	store.On("GetTicketByTicketID", mock.Anything, "tkt-1").Return(unassignedTicket(), nil)
	renderer.On("Render", mock.Anything, "A12").Return(nil, errors.New("font load failed"))

	svc := NewSeatService(store, renderer, new(mockUploader), monitoring.NewMonitor(nil))
	_, err := svc.AssignSeat(context.Background(), "tkt-1", "A12")

	require.Error(t, err)
	store.AssertNotCalled(t, "AssignSeat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
