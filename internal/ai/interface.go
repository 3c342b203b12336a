package ai

import (
	"context"
	"time"

	"speedyrider/internal/types"
)

// BriefingRequest carries the day's figures the provider turns into prose.
type BriefingRequest struct {
	RiderName    string
	Date         time.Time
	Assigned     int
	Completed    int
	CODCollected types.Money
	SuccessRate  float64
}

// BriefingProvider defines the contract for generating the daily briefing.
// This interface allows for swapping different AI providers in the future.
type BriefingProvider interface {
	DailyBriefing(ctx context.Context, req BriefingRequest) (string, error)
}
