package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"car_marketplace/internal/config"
	"car_marketplace/internal/domain/entities"

	"github.com/cenkalti/backoff/v4"
)

const (
	safepayCheckoutPath = "/checkout/v1/init"
	safepayMaxRetries   = 2
	maxGatewayBody      = 1 << 20
)

var ErrSafepayNotConfigured = errors.New("safepay gateway not configured")

// GatewayStatusError is a non-2xx answer from the gateway.
type GatewayStatusError struct {
	StatusCode int
	Body       string
}

func (e *GatewayStatusError) Error() string {
	return fmt.Sprintf("gateway responded %d: %s", e.StatusCode, e.Body)
}

// safepayCheckoutPayload is the outbound checkout body.
type safepayCheckoutPayload struct {
	MerchantKey   string           `json:"merchant_key"`
	OrderID       string           `json:"order_id"`
	Amount        int64            `json:"amount"`
	ItemName      string           `json:"item_name"`
	Currency      string           `json:"currency"`
	ReturnURL     string           `json:"return_url"`
	CancelURL     string           `json:"cancel_url"`
	NotifyURL     string           `json:"notify_url"`
	CustomerName  string           `json:"customer_name,omitempty"`
	CustomerEmail string           `json:"customer_email,omitempty"`
	Metadata      checkoutMetadata `json:"metadata"`
}

type checkoutMetadata struct {
	PaymentID      string `json:"paymentId"`
	ListingDraftID string `json:"listingDraftId,omitempty"`
	Feature        bool   `json:"feature"`
}

type SafepayGateway struct {
	cfg      config.GatewayConfig
	client   *http.Client
	verifier webhookVerifier
	retry    func() backoff.BackOff
}

func NewSafepayGateway(cfg config.GatewayConfig) (*SafepayGateway, error) {
	if !cfg.MockMode && (cfg.APIKey == "" || cfg.BaseURL == "") {
		log.Printf("[payment][gateway] safepay missing api key or base url")
		return nil, ErrSafepayNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	log.Printf("[payment][gateway] safepay client initialized base_url=%s mock=%t", cfg.BaseURL, cfg.MockMode)
	return &SafepayGateway{
		cfg:      cfg,
		client:   &http.Client{Timeout: timeout},
		verifier: newWebhookVerifier(cfg.SigningSecret),
		retry: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), safepayMaxRetries)
		},
	}, nil
}

func (g *SafepayGateway) Name() string { return config.ProviderSafepay }

func (g *SafepayGateway) CreateCheckout(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error) {
	if g.cfg.MockMode {
		return mockCheckoutSession(g.cfg, req), nil
	}

	payload := safepayCheckoutPayload{
		MerchantKey:   g.cfg.APIKey,
		OrderID:       req.OrderID,
		Amount:        req.AmountInPaise,
		ItemName:      req.ItemName,
		Currency:      req.Currency,
		ReturnURL:     g.cfg.SuccessURL(req.OrderID),
		CancelURL:     g.cfg.FailureURL(req.OrderID),
		NotifyURL:     g.cfg.NotifyURL(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Metadata: checkoutMetadata{
			PaymentID:      req.PaymentID,
			ListingDraftID: req.ListingDraftID,
			Feature:        req.Feature,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return entities.CheckoutSession{}, err
	}
	log.Printf("[payment][gateway] safepay checkout start order_id=%s amount_paise=%d", req.OrderID, req.AmountInPaise)

	var raw map[string]any
	op := func() error {
		raw, err = g.postCheckout(ctx, body)
		var se *GatewayStatusError
		if errors.As(err, &se) && se.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.WithContext(g.retry(), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		log.Printf("[payment][gateway] safepay checkout failed order_id=%s err=%v", req.OrderID, err)
		return entities.CheckoutSession{}, err
	}

	url := firstString(raw, "checkout_url", "url", "redirect_url")
	if url == "" {
		return entities.CheckoutSession{}, fmt.Errorf("safepay response without checkout url")
	}
	session := entities.CheckoutSession{
		CheckoutURL: url,
		ProviderRef: firstString(raw, "tracker", "token", "id"),
		Raw:         raw,
	}
	log.Printf("[payment][gateway] safepay checkout success order_id=%s tracker=%s", req.OrderID, session.ProviderRef)
	return session, nil
}

func (g *SafepayGateway) postCheckout(ctx context.Context, body []byte) (map[string]any, error) {
	endpoint := strings.TrimRight(g.cfg.BaseURL, "/") + safepayCheckoutPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxGatewayBody))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayStatusError{StatusCode: resp.StatusCode, Body: truncate(string(respBody), 256)}
	}

	var out map[string]any
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode safepay response: %w", err))
	}
	if data, ok := out["data"].(map[string]any); ok {
		for k, v := range data {
			if _, exists := out[k]; !exists {
				out[k] = v
			}
		}
	}
	return out, nil
}

func (g *SafepayGateway) VerifySignature(rawBody []byte, signature entities.WebhookSignature) error {
	return g.verifier.verify(rawBody, signature.Value)
}

func (g *SafepayGateway) ParseWebhook(_ context.Context, rawBody []byte) (entities.WebhookEvent, error) {
	return ParseWebhookFields(rawBody)
}

// mockCheckoutSession points the client straight at the frontend success page.
func mockCheckoutSession(cfg config.GatewayConfig, req entities.CheckoutRequest) entities.CheckoutSession {
	ref := fmt.Sprintf("mock_%d", time.Now().UTC().UnixNano())
	log.Printf("[payment][gateway] mock checkout order_id=%s ref=%s", req.OrderID, ref)
	return entities.CheckoutSession{
		CheckoutURL: cfg.SuccessURL(req.OrderID),
		ProviderRef: ref,
		Raw:         map[string]any{"mock": true, "order_id": req.OrderID},
	}
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
