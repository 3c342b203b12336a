// README: Analytics handlers (daily summary, AI briefing).
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"speedyrider/internal/http/middleware"
	"speedyrider/internal/modules/analytics"
)

type AnalyticsHandler struct {
	analytics *analytics.Service
}

func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: svc}
}

// day parses the optional ?date=YYYY-MM-DD query, defaulting to today.
func day(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	d, ok := day(c)
	if !ok {
		return
	}
	stats, err := h.analytics.DailyStats(c.Request.Context(), middleware.CallerRiderID(c), d)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AnalyticsHandler) Briefing(c *gin.Context) {
	d, ok := day(c)
	if !ok {
		return
	}
	text, err := h.analytics.Briefing(c.Request.Context(), middleware.CallerRiderID(c), d)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"briefing": text})
}
