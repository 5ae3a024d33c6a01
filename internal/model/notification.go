package model

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
)

// Notification is a due-task alert surfaced by the notification sweep.
//
// ID is deterministic per underlying task and kind (e.g. "overdue-<taskID>")
// so that re-deriving notifications from the same state never duplicates them.
type Notification struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Date    string           `json:"date"` // RFC3339
	Read    bool             `json:"read"`
	Type    NotificationType `json:"type"`
	LeadID  string           `json:"lead_id,omitempty"` // lookup only, non-owning
}
