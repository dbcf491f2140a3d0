package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"car_marketplace/internal/config"
	"car_marketplace/internal/domain/entities"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// The SDK clients are interfaces with many methods; the gateway needs one each.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentFetcher interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoGateway opens Checkout Pro preferences and resolves payment
// notifications through the payments API, since Mercado Pago webhooks only
// carry the payment id.
type MercadoPagoGateway struct {
	cfg         config.GatewayConfig
	preferences preferenceCreator
	payments    paymentFetcher
	verifier    webhookVerifier
}

func NewMercadoPagoGateway(cfg config.GatewayConfig) (*MercadoPagoGateway, error) {
	g := &MercadoPagoGateway{cfg: cfg, verifier: newWebhookVerifier(cfg.SigningSecret)}
	if cfg.MockMode {
		log.Printf("[payment][gateway] mock mode enabled")
		return g, nil
	}

	if cfg.AccessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := mpconfig.New(cfg.AccessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	g.preferences = preference.NewClient(sdkCfg)
	g.payments = payment.NewClient(sdkCfg)
	log.Printf("[payment][gateway] Mercado Pago client initialized")
	return g, nil
}

func (g *MercadoPagoGateway) Name() string { return config.ProviderMercadoPago }

func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error) {
	if g.cfg.MockMode {
		return mockCheckoutSession(g.cfg, req), nil
	}
	if g.preferences == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.CheckoutSession{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] preference create start order_id=%s amount_paise=%d", req.OrderID, req.AmountInPaise)

	request := preference.Request{
		ExternalReference: req.OrderID,
		NotificationURL:   g.cfg.NotifyURL(),
		Items: []preference.ItemRequest{
			{
				ID:         req.OrderID,
				Title:      req.ItemName,
				Quantity:   1,
				UnitPrice:  entities.PaiseToUnits(req.AmountInPaise),
				CurrencyID: req.Currency,
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: g.cfg.SuccessURL(req.OrderID),
			Failure: g.cfg.FailureURL(req.OrderID),
			Pending: g.cfg.SuccessURL(req.OrderID),
		},
		Metadata: map[string]any{
			"payment_id":       req.PaymentID,
			"listing_draft_id": req.ListingDraftID,
			"feature":          req.Feature,
		},
	}
	if req.CustomerEmail != "" || req.CustomerName != "" {
		request.Payer = &preference.PayerRequest{Name: req.CustomerName, Email: req.CustomerEmail}
	}

	resp, err := g.preferences.Create(ctx, request)
	if err != nil {
		log.Printf("[payment][gateway] sdk preference create failed order_id=%s err=%v", req.OrderID, err)
		return entities.CheckoutSession{}, err
	}
	if resp == nil || resp.InitPoint == "" {
		return entities.CheckoutSession{}, fmt.Errorf("mercado pago preference without init point")
	}
	log.Printf("[payment][gateway] preference create success order_id=%s preference_id=%s", req.OrderID, resp.ID)

	return entities.CheckoutSession{
		CheckoutURL: resp.InitPoint,
		ProviderRef: resp.ID,
		Raw:         map[string]any{"preference_id": resp.ID, "init_point": resp.InitPoint},
	}, nil
}

// VerifySignature checks the manifest signature Mercado Pago sends. A plain
// hex signature is checked against the raw body like the other providers.
func (g *MercadoPagoGateway) VerifySignature(rawBody []byte, signature entities.WebhookSignature) error {
	if len(g.verifier.secret) == 0 || !isMercadoPagoSignature(signature.Value) {
		return g.verifier.verify(rawBody, signature.Value)
	}
	return VerifyMercadoPagoSignature(g.verifier.secret, notificationDataID(rawBody), signature.RequestID, signature.Value)
}

// ParseWebhook accepts either a payment notification ({"type":"payment",
// "data":{"id":"123"}}), which is resolved through the payments API, or a
// flat payload carrying an order id.
func (g *MercadoPagoGateway) ParseWebhook(ctx context.Context, rawBody []byte) (entities.WebhookEvent, error) {
	var n struct {
		Type   string `json:"type"`
		Action string `json:"action"`
		Data   struct {
			ID json.Number `json:"id"`
		} `json:"data"`
	}
	dec := json.NewDecoder(bytes.NewReader(rawBody))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return entities.WebhookEvent{}, fmt.Errorf("decode mercado pago notification: %w", err)
	}

	isPayment := n.Type == "payment" || strings.HasPrefix(n.Action, "payment.")
	if !isPayment || n.Data.ID == "" || g.payments == nil {
		return ParseWebhookFields(rawBody)
	}

	id, err := strconv.Atoi(n.Data.ID.String())
	if err != nil {
		return entities.WebhookEvent{}, fmt.Errorf("invalid mercado pago payment id %q", n.Data.ID)
	}
	p, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk payment get failed provider_payment_id=%d err=%v", id, err)
		return entities.WebhookEvent{}, err
	}

	settled := unitsToPaise(p.TransactionAmount)
	var fees int64
	for _, f := range p.FeeDetails {
		fees += unitsToPaise(f.Amount)
	}
	ev := entities.WebhookEvent{
		OrderID:              p.ExternalReference,
		TransactionID:        strconv.Itoa(p.ID),
		RawStatus:            p.Status,
		Outcome:              ClassifyStatus(p.Status),
		SettledAmountInPaise: &settled,
		GatewayFeesInPaise:   &fees,
		Raw: map[string]any{
			"provider_payment_id": p.ID,
			"status":              p.Status,
			"status_detail":       p.StatusDetail,
			"external_reference":  p.ExternalReference,
			"transaction_amount":  p.TransactionAmount,
		},
	}
	// in_process and pending stay unrecognized; only terminal statuses move a payment.
	log.Printf("[payment][gateway] notification resolved provider_payment_id=%d status=%s order_id=%s", id, p.Status, p.ExternalReference)
	return ev, nil
}

func unitsToPaise(v float64) int64 {
	return int64(math.Round(v * float64(entities.PaisePerUnit)))
}
