// README: Location snapshot for persistence and replay.
package location

import (
	"time"

	"speedyrider/internal/types"
)

type Snapshot struct {
	ID         int64
	RiderID    types.ID
	Position   types.Point
	RecordedAt time.Time
}
