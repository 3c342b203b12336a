// README: Notification feed entries.
package notification

import "time"

type Type string

const (
	TypeAssignment Type = "assignment"
	TypeUpdate     Type = "update"
	TypeAlert      Type = "alert"
)

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Type      Type      `json:"type"`
}
