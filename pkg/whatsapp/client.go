package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tire-service/internal/variant"
	"tire-service/pkg/config"

	"go.uber.org/zap"
)

// Client builds the prefilled WhatsApp handoff link for an order and, when a
// webhook is configured, notifies it of the handoff. It implements the
// checkout dispatcher's OrderInitiator.
type Client struct {
	PhoneNumber string
	WebhookURL  string
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// NewClient creates a new WhatsApp handoff client
func NewClient(cfg *config.WhatsAppConfig, logger *zap.Logger) *Client {
	return &Client{
		PhoneNumber: cfg.PhoneNumber,
		WebhookURL:  cfg.WebhookURL,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		Logger:      logger,
	}
}

// Initiate hands the order off to the WhatsApp channel: it returns the
// wa.me link carrying the prefilled order message. The webhook notification
// is fire-and-forget; a failure there is logged, never retried, and does not
// fail the handoff.
func (c *Client) Initiate(ctx context.Context, lines []variant.OrderLine, total float64) (string, error) {
	message := BuildMessage(lines, total)
	link := c.BuildLink(message)

	if c.WebhookURL != "" {
		if err := c.notify(ctx, lines, total, link); err != nil {
			c.Logger.Warn("Order webhook notification failed", zap.Error(err))
		}
	}

	c.Logger.Info("Order handed off to WhatsApp",
		zap.Int("lines", len(lines)),
		zap.Float64("total", total))
	return link, nil
}

// BuildLink returns the wa.me URL opening a chat with the shop's number and
// the given message prefilled
func (c *Client) BuildLink(message string) string {
	return "https://wa.me/" + c.PhoneNumber + "?text=" + url.QueryEscape(message)
}

// BuildMessage renders the order as the outbound chat text
func BuildMessage(lines []variant.OrderLine, total float64) string {
	var b strings.Builder
	b.WriteString("¡Hola! Quiero hacer un pedido:\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "- %dx %s ($%.2f)\n", line.Quantity, line.Name, line.Price)
	}
	fmt.Fprintf(&b, "Total: $%.2f", total)
	return b.String()
}

type webhookPayload struct {
	Lines []variant.OrderLine `json:"lines"`
	Total float64             `json:"total"`
	Link  string              `json:"link"`
}

func (c *Client) notify(ctx context.Context, lines []variant.OrderLine, total float64, link string) error {
	body, err := json.Marshal(webhookPayload{Lines: lines, Total: total, Link: link})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
