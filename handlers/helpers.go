// Package handlers binds the HTTP surface to the services. Handlers stay
// thin: bind, call the service, map the error, encode the response.
package handlers

import (
	"errors"
	"net/http"

	"ticketdesk/internal/status"

	"github.com/pocketbase/pocketbase/apis"
)

// apiError maps service errors onto the HTTP taxonomy: missing resources are
// 404, one-way flag violations are 409, bad input is 400, auth failures are
// 401 and everything else is a 500.
func apiError(err error) error {
	switch {
	case errors.Is(err, status.ErrTicketNotFound),
		errors.Is(err, status.ErrEventNotFound),
		errors.Is(err, status.ErrAdminNotFound):
		return apis.NewNotFoundError(err.Error(), nil)

	case errors.Is(err, status.ErrSeatAlreadyAssigned),
		errors.Is(err, status.ErrTicketAlreadyUsed),
		errors.Is(err, status.ErrTicketAlreadySent):
		return apis.NewApiError(http.StatusConflict, err.Error(), nil)

	case errors.Is(err, status.ErrDocumentMissing),
		errors.Is(err, status.ErrInvalidCategory),
		errors.Is(err, status.ErrInvalidOrder):
		return apis.NewBadRequestError(err.Error(), nil)

	case errors.Is(err, status.ErrInvalidCredentials),
		errors.Is(err, status.ErrSessionNotFound):
		return apis.NewUnauthorizedError(err.Error(), nil)

	case errors.Is(err, status.ErrTemplateNotConfigured):
		return apis.NewApiError(http.StatusInternalServerError, err.Error(), nil)

	default:
		return apis.NewApiError(http.StatusInternalServerError, "something went wrong", nil)
	}
}
