package status

import "errors"

var (
	// Not found.
	ErrTicketNotFound = errors.New("ticket: ticket not found")
	ErrEventNotFound  = errors.New("event: event not found")
	ErrAdminNotFound  = errors.New("admin: admin not found")

	// Conflicts. Each of these marks a one-way flag that is already set.
	ErrSeatAlreadyAssigned = errors.New("ticket: seat already assigned")
	ErrTicketAlreadyUsed   = errors.New("ticket: ticket already used")
	ErrTicketAlreadySent   = errors.New("ticket: ticket already sent")

	// Preconditions.
	ErrDocumentMissing    = errors.New("ticket: ticket document not generated yet")
	ErrInvalidCategory    = errors.New("ticket: invalid ticket category")
	ErrInvalidOrder       = errors.New("order: invalid order item")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrSessionNotFound    = errors.New("auth: session not found")

	// ErrTemplateNotConfigured is returned when a ticket category has no
	// document template mapped to it.
	ErrTemplateNotConfigured = errors.New("docgen: no template configured for category")

	// ErrNoRowsUpdated is returned when a conditional single-row update
	// affected zero rows even though the row was just read.
	ErrNoRowsUpdated = errors.New("store: update affected no rows")

	// ErrDeliveryFailed is returned when the mail provider rejected the send.
	ErrDeliveryFailed = errors.New("notify: mail delivery failed")
)
