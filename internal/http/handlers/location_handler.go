// README: Rider location handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speedyrider/internal/http/middleware"
	"speedyrider/internal/modules/location"
	"speedyrider/internal/types"
)

type LocationHandler struct {
	locations *location.Service
}

func NewLocationHandler(svc *location.Service) *LocationHandler {
	return &LocationHandler{locations: svc}
}

type locationReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (h *LocationHandler) Update(c *gin.Context) {
	riderID := types.ID(c.Param("id"))
	if riderID != middleware.CallerRiderID(c) {
		writeError(c, http.StatusForbidden, "cannot update another rider's location")
		return
	}
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.locations.Update(c.Request.Context(), location.Update{
		RiderID:  riderID,
		Position: types.Point{Lat: req.Lat, Lng: req.Lng},
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *LocationHandler) Position(c *gin.Context) {
	pos, err := h.locations.Position(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lat": pos.Lat, "lng": pos.Lng})
}
