package payments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"car_marketplace/internal/domain/entities"
)

var ErrEmptyWebhookBody = errors.New("empty webhook body")

// Field aliases seen across gateway payload versions, in lookup order. Each
// alias is tried on the top level first and then inside "data".
var (
	orderIDAliases       = []string{"order_id", "orderId", "orderID", "reference", "merchant_order_id", "external_reference"}
	transactionIDAliases = []string{"transaction_id", "transactionId", "tracker", "txn_id", "token"}
	statusAliases        = []string{"status", "payment_status", "state", "event", "type"}
	amountAliases        = []string{"amount_in_paise", "amountInPaise", "settled_amount", "amount"}
	feeAliases           = []string{"fees_in_paise", "feesInPaise", "fee", "fees"}
)

// statusOutcomes normalizes lower-cased gateway statuses. Anything not listed
// is unrecognized and must not move a payment.
var statusOutcomes = map[string]entities.WebhookOutcome{
	"paid":              entities.WebhookOutcomeSucceeded,
	"success":           entities.WebhookOutcomeSucceeded,
	"succeeded":         entities.WebhookOutcomeSucceeded,
	"completed":         entities.WebhookOutcomeSucceeded,
	"captured":          entities.WebhookOutcomeSucceeded,
	"approved":          entities.WebhookOutcomeSucceeded,
	"payment:succeeded": entities.WebhookOutcomeSucceeded,
	"payment.succeeded": entities.WebhookOutcomeSucceeded,
	"payment:paid":      entities.WebhookOutcomeSucceeded,
	"failed":            entities.WebhookOutcomeFailed,
	"failure":           entities.WebhookOutcomeFailed,
	"declined":          entities.WebhookOutcomeFailed,
	"rejected":          entities.WebhookOutcomeFailed,
	"cancelled":         entities.WebhookOutcomeFailed,
	"canceled":          entities.WebhookOutcomeFailed,
	"expired":           entities.WebhookOutcomeFailed,
	"error":             entities.WebhookOutcomeFailed,
	"payment:failed":    entities.WebhookOutcomeFailed,
	"payment.failed":    entities.WebhookOutcomeFailed,
}

// ClassifyStatus maps a raw gateway status to an outcome.
func ClassifyStatus(raw string) entities.WebhookOutcome {
	if o, ok := statusOutcomes[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return o
	}
	return entities.WebhookOutcomeUnrecognized
}

// ParseWebhookFields decodes a JSON webhook and maps the known aliases onto a
// WebhookEvent. Amounts are read as paise.
func ParseWebhookFields(rawBody []byte) (entities.WebhookEvent, error) {
	if len(bytes.TrimSpace(rawBody)) == 0 {
		return entities.WebhookEvent{}, ErrEmptyWebhookBody
	}

	dec := json.NewDecoder(bytes.NewReader(rawBody))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return entities.WebhookEvent{}, fmt.Errorf("decode webhook: %w", err)
	}

	f := fieldSet{root: payload}
	if data, ok := payload["data"].(map[string]any); ok {
		f.data = data
	}

	ev := entities.WebhookEvent{
		OrderID:       f.str(orderIDAliases),
		TransactionID: f.str(transactionIDAliases),
		RawStatus:     f.str(statusAliases),
		Raw:           payload,
	}
	ev.Outcome = ClassifyStatus(ev.RawStatus)

	if v, ok := f.paise(amountAliases); ok {
		ev.SettledAmountInPaise = &v
	}
	if v, ok := f.paise(feeAliases); ok {
		ev.GatewayFeesInPaise = &v
	}
	return ev, nil
}

type fieldSet struct {
	root map[string]any
	data map[string]any
}

func (f fieldSet) lookup(aliases []string) (any, bool) {
	for _, m := range []map[string]any{f.root, f.data} {
		if m == nil {
			continue
		}
		for _, k := range aliases {
			if v, ok := m[k]; ok && v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

func (f fieldSet) str(aliases []string) string {
	v, ok := f.lookup(aliases)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	}
	return ""
}

func (f fieldSet) paise(aliases []string) (int64, bool) {
	v, ok := f.lookup(aliases)
	if !ok {
		return 0, false
	}
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(fl) && !math.IsInf(fl, 0) {
		return int64(math.Round(fl)), true
	}
	return 0, false
}
