package ai

import (
	"context"
	"fmt"
)

// TemplateProvider renders the briefing from a fixed template. Wired when no
// Gemini API key is configured.
type TemplateProvider struct{}

func (TemplateProvider) DailyBriefing(_ context.Context, req BriefingRequest) (string, error) {
	return fmt.Sprintf(
		"%s, on %s you were assigned %d parcels and completed %d (%.0f%% success rate). "+
			"You collected %.2f %s in cash-on-delivery payments. Keep it up!",
		req.RiderName,
		req.Date.Format("January 2, 2006"),
		req.Assigned,
		req.Completed,
		req.SuccessRate*100,
		float64(req.CODCollected.Amount)/100,
		req.CODCollected.Currency,
	), nil
}
