package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"tire-service/internal/variant"
	"tire-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(phone, webhook string) *Client {
	return NewClient(&config.WhatsAppConfig{PhoneNumber: phone, WebhookURL: webhook}, zap.NewNop())
}

func TestBuildMessage(t *testing.T) {
	lines := []variant.OrderLine{
		{ProductID: 7, Name: "City Go", Quantity: 1, Price: 45.50},
	}

	message := BuildMessage(lines, 45.50)

	assert.Equal(t, "¡Hola! Quiero hacer un pedido:\n- 1x City Go ($45.50)\nTotal: $45.50", message)
}

func TestBuildLinkEscapesMessage(t *testing.T) {
	c := testClient("5215512345678", "")

	link := c.BuildLink("hola & adiós")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/5215512345678", parsed.Path)
	assert.Equal(t, "hola & adiós", parsed.Query().Get("text"))
}

func TestInitiateReturnsHandoffLink(t *testing.T) {
	c := testClient("5215512345678", "")
	lines := []variant.OrderLine{
		{ProductID: 1, Name: "Road King", Quantity: 1, Price: 80},
	}

	link, err := c.Initiate(context.Background(), lines, 80)

	require.NoError(t, err)
	parsed, perr := url.Parse(link)
	require.NoError(t, perr)
	assert.Equal(t, "https", parsed.Scheme)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Contains(t, parsed.Query().Get("text"), "Road King")
	assert.Contains(t, parsed.Query().Get("text"), "Total: $80.00")
}

func TestInitiateNotifiesWebhook(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient("5215512345678", srv.URL)
	lines := []variant.OrderLine{
		{ProductID: 7, Name: "City Go", Quantity: 1, Price: 45.50},
	}

	link, err := c.Initiate(context.Background(), lines, 45.50)

	require.NoError(t, err)
	assert.Equal(t, lines, got.Lines)
	assert.Equal(t, 45.50, got.Total)
	assert.Equal(t, link, got.Link)
}

func TestInitiateSurvivesWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient("5215512345678", srv.URL)

	link, err := c.Initiate(context.Background(), []variant.OrderLine{
		{ProductID: 1, Name: "Road King", Quantity: 1, Price: 80},
	}, 80)

	// the webhook is fire-and-forget: the handoff link still comes back
	require.NoError(t, err)
	assert.NotEmpty(t, link)
}
