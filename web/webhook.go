/* webhook.go
 * Contains the webhook that kicks off a refresh of the stored results
 */

package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// WebhookSecretHeader carries the shared secret of refresh webhooks
const WebhookSecretHeader = "X-Webhook-Secret"

const refreshTimeout = 2 * time.Minute

// RefreshWebhookHandler HTTP endpoint that receives a webhook used to kick off refreshing the stored results
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request. The body is optional.
// Postconditions: Starts an async refresh and responds 202, or 200 if a refresh is already running
func (s *Server) RefreshWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if s.webhookSecret != "" {
		got := r.Header.Get(WebhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.webhookSecret)) != 1 {
			s.respondError(w, r, http.StatusUnauthorized, "invalid webhook secret")
			return
		}
	}

	var event RefreshEvent
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&event)
	if err != nil && !errors.Is(err, io.EOF) {
		logFromRequest(r, s.log).WithError(err).Warn("failed to decode webhook")
		s.respondError(w, r, http.StatusBadRequest, "invalid webhook body")
		return
	}

	log := logFromRequest(r, s.log).WithFields(logrus.Fields{"source": event.Source, "event": event.Event})
	if !s.refreshing.CompareAndSwap(false, true) {
		log.Info("refresh already running")
		s.respondJSON(w, r, http.StatusOK, map[string]string{"status": "already running"})
		return
	}
	log.Info("refresh webhook received")

	// the refresh outlives the request
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		err := s.api.RefreshResults(ctx)
		if err != nil {
			log.WithError(err).Error("refresh failed")
		}
		s.refreshing.Store(false)
		if s.done != nil {
			s.done(err)
		}
	}()

	s.respondJSON(w, r, http.StatusAccepted, map[string]string{"status": "refreshing"})
}
