package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lamiarosa/store-api/internal/domain"
)

// httpError maps a service error onto an HTTP response. Validation failures
// surface their message; anything else logs the detail under the operation
// tag and returns the generic body, so internals never leak to clients.
func httpError(w http.ResponseWriter, err error, op, generic string) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, userMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, userMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, userMessage(err))
	default:
		slog.Error(op, "err", err)
		writeError(w, http.StatusInternalServerError, generic)
	}
}

// userMessage strips the wrapped sentinel suffix so clients see
// "cart is empty" rather than "cart is empty: bad request".
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrBadRequest, domain.ErrUnauthorized, domain.ErrNotFound} {
		msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	}
	return msg
}
