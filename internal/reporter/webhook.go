package reporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// WebhookNotifier delivers messages as a JSON payload to an incoming
// webhook. Failed sends are the caller's problem to log; no retries.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewWebhookNotifier creates a notifier posting to the given webhook URL.
func NewWebhookNotifier(url string, log *logrus.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// Send posts the message. targetID, when non-empty, is set as the channel
// field so the webhook can route or mention a recipient.
func (n *WebhookNotifier) Send(message, targetID string) error {
	payload := map[string]string{"text": message}
	if targetID != "" {
		payload["channel"] = targetID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	n.log.Debugf("Sending webhook notification (%d bytes)", len(body))

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	n.log.Debug("Webhook notification sent successfully")
	return nil
}
