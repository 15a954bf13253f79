// Package notify delivers fire-and-forget remote-change notifications.
// Delivery failures are logged and swallowed; the core never waits on or
// retries a notification.
package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"
)

// LogNotifier is the default notifier: one structured log line per event.
type LogNotifier struct {
	log *logger.Entry
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.WithField("component", "notify")}
}

// NotifyRemoteChanges logs the newly detected remote commits.
func (it *LogNotifier) NotifyRemoteChanges(repositoryName string, remoteAhead int) {
	it.log.Infof("%s has %d new remote commit(s)", repositoryName, remoteAhead)
}

// remoteChangesEvent is the JSON payload posted by the webhook notifier.
type remoteChangesEvent struct {
	Repository  string `json:"repository"`
	RemoteAhead int    `json:"remote_ahead"`
}

// WebhookNotifier POSTs a small JSON event to a configured URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    *logger.Entry
}

// NewWebhookNotifier creates a notifier posting to url.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logger.WithField("component", "notify"),
	}
}

// NotifyRemoteChanges posts the event in the background. Errors are logged
// and dropped; there is no exactly-once guarantee.
func (it *WebhookNotifier) NotifyRemoteChanges(repositoryName string, remoteAhead int) {
	payload, err := json.Marshal(remoteChangesEvent{
		Repository:  repositoryName,
		RemoteAhead: remoteAhead,
	})
	if err != nil {
		it.log.Warnf("Failed to encode notification: %v", err)
		return
	}

	go func() {
		resp, postErr := it.client.Post(it.url, "application/json", bytes.NewReader(payload))
		if postErr != nil {
			it.log.Warnf("Webhook delivery failed: %v", postErr)
			return
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode >= http.StatusBadRequest {
			it.log.Warnf("Webhook endpoint returned %s", resp.Status)
		}
	}()
}
