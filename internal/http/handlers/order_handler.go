// README: Order lifecycle handlers (list, gates, history, QR).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speedyrider/internal/barcode"
	"speedyrider/internal/http/middleware"
	"speedyrider/internal/modules/order"
	"speedyrider/internal/types"
)

type OrderHandler struct {
	orders *order.Service
	hubID  string
}

func NewOrderHandler(svc *order.Service, hubID string) *OrderHandler {
	return &OrderHandler{orders: svc, hubID: hubID}
}

type orderView struct {
	ID                  types.ID         `json:"id"`
	CustomerName        string           `json:"customer_name"`
	CustomerPhone       string           `json:"customer_phone"`
	PickupAddress       string           `json:"pickup_address"`
	DeliveryAddress     string           `json:"delivery_address"`
	Items               []order.LineItem `json:"items"`
	SpecialInstructions string           `json:"special_instructions,omitempty"`
	Status              order.Status     `json:"status"`
	TotalAmount         int64            `json:"total_amount"`
	Currency            string           `json:"currency"`
	Distance            string           `json:"distance,omitempty"`
	EstimatedTime       string           `json:"estimated_time,omitempty"`
	PaymentStatus       string           `json:"payment_status"`
	PaymentMethod       *string          `json:"payment_method,omitempty"`
	PODPhotoURL         *string          `json:"pod_photo_url,omitempty"`
	NextAction          *order.Action    `json:"next_action,omitempty"`
}

func toView(o *order.Order) orderView {
	v := orderView{
		ID:                  o.ID,
		CustomerName:        o.CustomerName,
		CustomerPhone:       o.CustomerPhone,
		PickupAddress:       o.PickupAddress,
		DeliveryAddress:     o.DeliveryAddress,
		Items:               o.Items,
		SpecialInstructions: o.SpecialInstructions,
		Status:              o.Status,
		TotalAmount:         o.TotalAmount.Amount,
		Currency:            o.TotalAmount.Currency,
		Distance:            o.Distance,
		EstimatedTime:       o.EstimatedTime,
		PaymentStatus:       string(o.PaymentStatus),
		PaymentMethod:       o.PaymentMethod,
		PODPhotoURL:         o.PODPhotoURL,
	}
	if tr, ok := order.NextTransition(o.Status); ok {
		a := tr.Action
		v.NextAction = &a
	}
	return v
}

// List returns the caller's assigned orders plus the unassigned pool.
func (h *OrderHandler) List(c *gin.Context) {
	riderID := middleware.CallerRiderID(c)
	assigned, err := h.orders.ListForRider(c.Request.Context(), riderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	pending, err := h.orders.ListPending(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := gin.H{
		"assigned": viewList(assigned),
		"pending":  viewList(pending),
	}
	c.JSON(http.StatusOK, out)
}

func viewList(orders []*order.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toView(o))
	}
	return out
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(o))
}

func (h *OrderHandler) Accept(c *gin.Context) {
	err := h.orders.Accept(c.Request.Context(), order.AcceptCommand{
		OrderID: types.ID(c.Param("id")),
		RiderID: middleware.CallerRiderID(c),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.StatusAccepted})
}

type advanceReq struct {
	Action string `json:"action"`
}

func (h *OrderHandler) Advance(c *gin.Context) {
	var req advanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Action == "" {
		writeError(c, http.StatusBadRequest, "missing action")
		return
	}
	err := h.orders.MarkProgress(c.Request.Context(), order.AdvanceCommand{
		OrderID: types.ID(c.Param("id")),
		RiderID: middleware.CallerRiderID(c),
		Action:  order.Action(req.Action),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	o, err := h.orders.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": o.Status})
}

type scanReq struct {
	Barcode string `json:"barcode"`
}

func (h *OrderHandler) Scan(c *gin.Context) {
	var req scanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.orders.ScanPackage(c.Request.Context(), order.ScanCommand{
		OrderID: types.ID(c.Param("id")),
		RiderID: middleware.CallerRiderID(c),
		Scanned: req.Barcode,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.StatusPickedUp})
}

type verifyReq struct {
	Method string `json:"method"`
	OTP    string `json:"otp"`
}

func (h *OrderHandler) Verify(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.orders.VerifyDelivery(c.Request.Context(), order.VerifyCommand{
		OrderID: types.ID(c.Param("id")),
		RiderID: middleware.CallerRiderID(c),
		Method:  order.VerifyMethod(req.Method),
		OTP:     req.OTP,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.StatusVerified})
}

type completeReq struct {
	PhotoURL string   `json:"photo_url"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

func (h *OrderHandler) Complete(c *gin.Context) {
	var req completeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := order.CompleteCommand{
		OrderID:  types.ID(c.Param("id")),
		RiderID:  middleware.CallerRiderID(c),
		PhotoURL: req.PhotoURL,
	}
	if req.Lat != nil && req.Lng != nil {
		cmd.Location = &types.Point{Lat: *req.Lat, Lng: *req.Lng}
	}
	if err := h.orders.Complete(c.Request.Context(), cmd); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.StatusCompleted})
}

func (h *OrderHandler) Events(c *gin.Context) {
	events, err := h.orders.Events(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	type eventView struct {
		FromStatus order.Status `json:"from_status"`
		ToStatus   order.Status `json:"to_status"`
		Action     order.Action `json:"action"`
		CreatedAt  string       `json:"created_at"`
	}
	out := make([]eventView, 0, len(events))
	for _, e := range events {
		out = append(out, eventView{
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			Action:     e.Action,
			CreatedAt:  e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

// QR returns the package-verification payload the customer scans.
func (h *OrderHandler) QR(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	qr, err := barcode.BuildPackageQR(string(o.ID), h.hubID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"qr": qr})
}
