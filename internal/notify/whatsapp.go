package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"laundrybill/pkg/apperror"
)

// DefaultCountryCode is prefixed to ten-digit local numbers.
const DefaultCountryCode = "91"

// GatewayConfig configures the HTTP WhatsApp gateway.
type GatewayConfig struct {
	URL         string
	Token       string
	CountryCode string
	Timeout     time.Duration
}

// WhatsAppGateway posts messages to an HTTP bridge in front of a WhatsApp session.
type WhatsAppGateway struct {
	cfg    GatewayConfig
	client *http.Client
}

type gatewayMessage struct {
	ChatID  string `json:"chat_id"`
	Message string `json:"message"`
}

func NewWhatsAppGateway(cfg GatewayConfig) *WhatsAppGateway {
	if cfg.CountryCode == "" {
		cfg.CountryCode = DefaultCountryCode
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &WhatsAppGateway{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// Send delivers text to phone. Any failure is returned as a DeliveryError.
func (g *WhatsAppGateway) Send(ctx context.Context, phone, text string) error {
	body, err := json.Marshal(gatewayMessage{ChatID: ChatID(g.cfg.CountryCode, phone), Message: text})
	if err != nil {
		return apperror.NewDeliveryError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return apperror.NewDeliveryError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return apperror.NewDeliveryError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperror.NewDeliveryError(fmt.Errorf("gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet)))
	}
	return nil
}
