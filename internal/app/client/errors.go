package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoSession      = errors.New("no session, run `recordbook session new` first")
	ErrRecordNotFound = errors.New("record does not exist")
	ErrSessionGone    = errors.New("session is unknown or expired, run `recordbook session new`")
)

// APIError is an error response of the server.
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message  string `json:"message"`
		Location string `json:"location"`
	} `json:"errors"`
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	for _, d := range e.Errors {
		if d.Location != "" {
			msg += fmt.Sprintf("; %s: %s", d.Location, d.Message)
		} else if d.Message != "" {
			msg += "; " + d.Message
		}
	}
	return fmt.Sprintf("server: %s (%d)", msg, e.Status)
}
