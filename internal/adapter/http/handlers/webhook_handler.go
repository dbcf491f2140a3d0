package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	response "car_marketplace/internal/adapter/http/dto/response"
	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase"
	"car_marketplace/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderSafepaySignature = "x-safepay-signature"
	HeaderSignature        = "x-signature"
	HeaderRequestID        = "x-request-id"

	maxWebhookBody = 1 << 20
)

// WebhookHandler receives gateway callbacks. Apart from signature and
// payload errors every delivery is acknowledged, so the gateway does not
// retry effects that already failed on our side.
type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleWebhook godoc
// @Summary      Payment gateway callback
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        x-safepay-signature  header  string  false  "HMAC-SHA256 of the raw body"
// @Param        x-signature          header  string  false  "Alternate signature header"
// @Param        x-request-id         header  string  false  "Request id signed by Mercado Pago"
// @Success      200  {object}  response.WebhookAckResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  response.WebhookAckResponse
// @Router       /payments/webhook [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		log.Printf("[webhook][handler] read body failed err=%v", err)
		writeError(c, errInvalidRequest)
		return
	}

	signature := entities.WebhookSignature{
		Value:     c.GetHeader(HeaderSafepaySignature),
		RequestID: c.GetHeader(HeaderRequestID),
	}
	if signature.Value == "" {
		signature.Value = c.GetHeader(HeaderSignature)
	}

	result, err := h.usecase.HandleWebhook(c.Request.Context(), raw, signature)
	switch {
	case errors.Is(err, usecase.ErrInvalidSignature):
		log.Printf("[security][webhook] signature mismatch remote=%s body_len=%d", c.ClientIP(), len(raw))
		writeError(c, pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid signature", http.StatusBadRequest))
		return
	case errors.Is(err, usecase.ErrInvalidWebhookPayload):
		writeError(c, pkg.NewDomainErrorSimple("INVALID_WEBHOOK_PAYLOAD", "Invalid webhook payload", http.StatusBadRequest))
		return
	case err != nil:
		log.Printf("[webhook][handler] processing failed, acknowledging err=%v", err)
		c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
		return
	}

	if result.Status == usecase.WebhookStatusNotFound {
		c.JSON(http.StatusNotFound, response.WebhookAckResponse{Received: true, Status: string(result.Status)})
		return
	}
	if result.EffectErr != nil {
		log.Printf("[webhook][handler] effect failed, acknowledging payment_id=%s order_id=%s err=%v", result.PaymentID, result.OrderID, result.EffectErr)
	}
	c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true, Status: string(result.Status)})
}
