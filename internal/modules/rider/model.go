// README: Rider accounts.
package rider

import (
	"time"

	"speedyrider/internal/types"
)

type Rider struct {
	ID        types.ID
	Name      string
	Phone     string
	MPINHash  string
	LastSeen  *time.Time
	CreatedAt time.Time
}
