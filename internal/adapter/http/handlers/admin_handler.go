package handlers

import (
	"log"
	"net/http"

	response "car_marketplace/internal/adapter/http/dto/response"
	"car_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	query usecase.IPaymentQueryUseCase
}

func NewAdminHandler(query usecase.IPaymentQueryUseCase) *AdminHandler {
	return &AdminHandler{query: query}
}

// ListReconciliation godoc
// @Summary      Drafts paid but not published, for manual review
// @Tags         admin
// @Produce      json
// @Success      200  {array}  response.ListingDraftResponse
// @Failure      403  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/payments/reconciliation [get]
func (h *AdminHandler) ListReconciliation(c *gin.Context) {
	drafts, err := h.query.ListReconciliationDrafts(c.Request.Context())
	if err != nil {
		log.Printf("[admin][handler] reconciliation failed err=%v", err)
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromListingDrafts(drafts))
}
