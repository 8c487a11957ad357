// internal/notification/models.go

package notifications

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// NotificationType represents different notification types
type NotificationType string

const (
	TypeMatch           NotificationType = "match"
	TypeOpportunity     NotificationType = "opportunity"
	TypeProfileApproved NotificationType = "profile_approved"
	TypeSystem          NotificationType = "system"
)

// Notification represents a notification entity
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Data      NotificationData `json:"data" db:"data"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// NotificationData represents additional notification payload
type NotificationData map[string]interface{}

// Scan implements sql.Scanner interface
func (nd *NotificationData) Scan(value interface{}) error {
	if value == nil {
		*nd = make(NotificationData)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, nd)
}

// Value implements driver.Valuer interface
func (nd NotificationData) Value() (driver.Value, error) {
	if nd == nil {
		return "{}", nil
	}
	return json.Marshal(nd)
}

// EmailMessage represents an outgoing email
type EmailMessage struct {
	To      string
	Subject string
	Body    string
	HTML    string
}

// SMSMessage represents an outgoing SMS
type SMSMessage struct {
	To      string
	Message string
}

// UserContact holds the delivery addresses for a user
type UserContact struct {
	UserID      int64  `db:"id"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	DisplayName string `db:"display_name"`
}

// NotificationsResponse represents a paginated notifications response
type NotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	TotalCount    int             `json:"total_count"`
	UnreadCount   int             `json:"unread_count"`
	HasMore       bool            `json:"has_more"`
}
