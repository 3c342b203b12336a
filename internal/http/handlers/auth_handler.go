// README: Login and logout handlers.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"speedyrider/internal/modules/rider"
)

type AuthHandler struct {
	riders *rider.Service
}

func NewAuthHandler(svc *rider.Service) *AuthHandler {
	return &AuthHandler{riders: svc}
}

type loginReq struct {
	Phone string `json:"phone"`
	MPIN  string `json:"mpin"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Phone == "" || req.MPIN == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	res, err := h.riders.Login(c.Request.Context(), req.Phone, req.MPIN)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": res.Token,
		"rider": gin.H{
			"id":    res.Rider.ID,
			"name":  res.Rider.Name,
			"phone": res.Rider.Phone,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || token == "" {
		writeError(c, http.StatusBadRequest, "missing bearer token")
		return
	}
	if err := h.riders.Logout(c.Request.Context(), token); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}
