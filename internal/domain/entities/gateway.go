package entities

// CheckoutRequest is everything a gateway needs to open a hosted checkout.
type CheckoutRequest struct {
	PaymentID      string
	OrderID        string
	AmountInPaise  int64
	Currency       string
	ItemName       string
	CustomerName   string
	CustomerEmail  string
	ListingDraftID string
	Feature        bool
}

// WebhookSignature carries the authentication headers of a gateway callback.
// RequestID is only part of Mercado Pago's signed manifest.
type WebhookSignature struct {
	Value     string
	RequestID string
}

// CheckoutSession is the gateway's answer to a checkout request.
type CheckoutSession struct {
	CheckoutURL string
	ProviderRef string
	Raw         map[string]any
}

// WebhookOutcome is the normalized classification of a gateway status.
type WebhookOutcome string

const (
	WebhookOutcomeSucceeded    WebhookOutcome = "succeeded"
	WebhookOutcomeFailed       WebhookOutcome = "failed"
	WebhookOutcomeUnrecognized WebhookOutcome = "unrecognized"
)

// WebhookEvent is a gateway callback mapped onto canonical fields.
type WebhookEvent struct {
	OrderID              string
	TransactionID        string
	RawStatus            string
	Outcome              WebhookOutcome
	SettledAmountInPaise *int64
	GatewayFeesInPaise   *int64
	Raw                  map[string]any
}
