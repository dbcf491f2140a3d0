package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

var ErrMissingSignature = errors.New("webhook signature missing")

// VerifyWebhookHMAC checks an HMAC-SHA256 hex signature over the raw request
// body. A "sha256=" prefix on the signature is accepted.
func VerifyWebhookHMAC(secret, body []byte, signature string) error {
	if len(secret) == 0 {
		return errors.New("webhook HMAC: secret is empty")
	}
	if len(body) == 0 {
		return errors.New("webhook HMAC: body is empty")
	}
	if signature == "" {
		return ErrMissingSignature
	}

	hexSignature := strings.TrimPrefix(strings.TrimSpace(signature), "sha256=")
	signatureBytes, err := hex.DecodeString(hexSignature)
	if err != nil {
		return fmt.Errorf("webhook HMAC: invalid hex signature: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	expected := mac.Sum(nil)

	if subtle.ConstantTimeCompare(expected, signatureBytes) != 1 {
		return errors.New("webhook HMAC: signature mismatch")
	}
	return nil
}

// SignWebhookBody produces the signature VerifyWebhookHMAC accepts. Used by
// the mock gateway and tests.
func SignWebhookBody(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// webhookVerifier applies the shared-secret policy: with no secret every
// call is trusted, otherwise a valid signature is mandatory.
type webhookVerifier struct {
	secret []byte
}

func newWebhookVerifier(secret string) webhookVerifier {
	if secret == "" {
		log.Printf("[payment][gateway] no webhook signing secret configured; inbound webhooks are NOT authenticated")
	}
	return webhookVerifier{secret: []byte(secret)}
}

func (v webhookVerifier) verify(rawBody []byte, signature string) error {
	if len(v.secret) == 0 {
		return nil
	}
	return VerifyWebhookHMAC(v.secret, rawBody, signature)
}

// VerifyMercadoPagoSignature checks Mercado Pago's "ts=<ts>,v1=<hex>" header,
// an HMAC-SHA256 over the manifest "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
// Parts without a value are left out of the manifest.
func VerifyMercadoPagoSignature(secret []byte, dataID, requestID, header string) error {
	if len(secret) == 0 {
		return errors.New("mercado pago signature: secret is empty")
	}
	if strings.TrimSpace(header) == "" {
		return ErrMissingSignature
	}

	ts, v1 := parseMercadoPagoSignature(header)
	if ts == "" || v1 == "" {
		return errors.New("mercado pago signature: ts and v1 are required")
	}
	got, err := hex.DecodeString(v1)
	if err != nil {
		return fmt.Errorf("mercado pago signature: invalid hex: %w", err)
	}
	if !hmac.Equal(mercadoPagoManifestMAC(secret, dataID, requestID, ts), got) {
		return errors.New("mercado pago signature: mismatch")
	}
	return nil
}

// SignMercadoPagoNotification builds the x-signature header Mercado Pago
// would send for a notification.
func SignMercadoPagoNotification(secret []byte, dataID, requestID, ts string) string {
	return "ts=" + ts + ",v1=" + hex.EncodeToString(mercadoPagoManifestMAC(secret, dataID, requestID, ts))
}

func isMercadoPagoSignature(header string) bool {
	_, v1 := parseMercadoPagoSignature(header)
	return v1 != ""
}

func parseMercadoPagoSignature(header string) (ts, v1 string) {
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "ts":
			ts = strings.TrimSpace(value)
		case "v1":
			v1 = strings.TrimSpace(value)
		}
	}
	return ts, v1
}

func mercadoPagoManifestMAC(secret []byte, dataID, requestID, ts string) []byte {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	b.WriteString("ts:" + ts + ";")

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(b.String()))
	return mac.Sum(nil)
}

// notificationDataID returns data.id of a notification body, which may be a
// JSON string or number.
func notificationDataID(rawBody []byte) string {
	var n struct {
		Data struct {
			ID json.RawMessage `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rawBody, &n); err != nil || len(n.Data.ID) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(n.Data.ID, &id); err == nil {
		return id
	}
	return strings.TrimSpace(string(n.Data.ID))
}
