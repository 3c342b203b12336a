// README: Payment collection handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speedyrider/internal/http/middleware"
	"speedyrider/internal/modules/order"
	"speedyrider/internal/modules/payment"
	"speedyrider/internal/types"
)

type PaymentHandler struct {
	payments *payment.Service
}

func NewPaymentHandler(svc *payment.Service) *PaymentHandler {
	return &PaymentHandler{payments: svc}
}

type collectReq struct {
	Method string `json:"method"`
}

func (h *PaymentHandler) Collect(c *gin.Context) {
	var req collectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.payments.Collect(c.Request.Context(), payment.CollectCommand{
		OrderID: types.ID(c.Param("id")),
		RiderID: middleware.CallerRiderID(c),
		Method:  payment.Method(req.Method),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.StatusPaymentCollected})
}
