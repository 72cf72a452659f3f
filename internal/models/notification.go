package models

import "time"

// NotificationType is the closed set of notification causes.
type NotificationType string

const (
	NotificationResponse NotificationType = "response"
	NotificationQuote    NotificationType = "quote"
	NotificationMention  NotificationType = "mention"
)

// ValidNotificationType reports whether t is one of the known types.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationResponse, NotificationQuote, NotificationMention:
		return true
	}
	return false
}

// Notification is a NOTIFIES edge from the triggering post to the target
// user. Read is a one-way false→true flag. The listing form denormalizes
// the triggering author's username.
type Notification struct {
	UUID           string           `json:"uuid"`
	Type           NotificationType `json:"type"`
	Read           bool             `json:"read"`
	CreationDate   time.Time        `json:"creation_date"`
	PostUUID       string           `json:"post_uuid"`
	TargetUUID     string           `json:"-"`
	AuthorUsername string           `json:"author_username,omitempty"`
}
