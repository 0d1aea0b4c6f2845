/* models.go
 * Contains the server configuration and the request and response bodies of the HTTP api
 */

package web

import (
	"sync/atomic"

	"bracket-pool/api/api"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	// WebhookSecret must be sent in the X-Webhook-Secret header of refresh webhooks when set
	WebhookSecret string
	Logger        *logrus.Logger
}

// Server is the HTTP server that handles the pool api and refresh webhooks
type Server struct {
	api           *api.API
	log           *logrus.Entry
	validate      *validator.Validate
	webhookSecret string
	refreshing    atomic.Bool
	// done is called when an async refresh finishes, tests use it to wait
	done func(error)
}

// SetBracketRequest is the body of PUT /api/entries/{userID}
type SetBracketRequest struct {
	Username string   `json:"username" validate:"max=100"`
	Picks    []string `json:"picks" validate:"required,min=1,max=63,dive,max=100"`
}

// EntryResponse is a user's stored bracket
type EntryResponse struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	State    string   `json:"state"`
	Picks    []string `json:"picks"`
}

// MasterBracketResponse is the current results
type MasterBracketResponse struct {
	Master   []string `json:"master"`
	Elim     []string `json:"elim"`
	Resolved int      `json:"resolved"`
}

// RefreshEvent is the optional body of a refresh webhook
type RefreshEvent struct {
	Source string `json:"source"`
	Event  string `json:"event"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
