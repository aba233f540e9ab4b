package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/medilink-notifier/internal/domain"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{domain.ErrMissingInput, http.StatusBadRequest},
	{domain.ErrBadRequest, http.StatusBadRequest},
	{domain.ErrInvalidCode, http.StatusBadRequest},
	{domain.ErrCodeExpired, http.StatusBadRequest},
	{domain.ErrInvalidCodePurpose, http.StatusBadRequest},
	{domain.ErrInvalidPayload, http.StatusBadRequest},
	{domain.ErrInvalidToken, http.StatusBadRequest},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrNotFound, http.StatusNotFound},
}

// statusFor maps a service error to an HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// publicMessage drops the trailing sentinel text from a wrapped error and
// capitalizes the rest, so "title is required: missing input" reads
// "Title is required".
func publicMessage(err error) string {
	return capitalize(detail(err))
}

// detail is publicMessage without capitalization, for embedding in a sentence.
func detail(err error) string {
	msg := err.Error()
	if u := errors.Unwrap(err); u != nil {
		msg = strings.TrimSuffix(msg, ": "+u.Error())
	}
	return msg
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func httpError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), publicMessage(err))
}
