package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is a non-2xx response. Detail is the server's human-readable message
// from the {"detail": "..."} body, when there was one.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Detail)
	}

	return fmt.Sprintf("request failed with status %d", e.Status)
}

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

func newError(resp *http.Response) *Error {
	e := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return e
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}

	if json.Unmarshal(body, &payload) != nil {
		return e
	}

	var detail string
	if json.Unmarshal(payload.Detail, &detail) == nil {
		e.Detail = detail
	}

	return e
}

// UserMessage picks the text shown to the user for a failed action: the
// server's detail, else the error text, else fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return fallback
}

// IsStatus reports whether err is an API error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
