// README: Daily performance figures for the dashboard.
package analytics

import (
	"time"

	"speedyrider/internal/types"
)

type DailyStats struct {
	Date         time.Time   `json:"date"`
	Assigned     int         `json:"assigned"`
	Completed    int         `json:"completed"`
	CODCollected types.Money `json:"cod_collected"`
	SuccessRate  float64     `json:"success_rate"`
}
