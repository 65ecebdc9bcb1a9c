package models

import "time"

type NotificationType string

const (
	NotificationRequest             NotificationType = "request"
	NotificationBookingConfirmation NotificationType = "booking_confirmation"
	NotificationConfirmed           NotificationType = "confirmed"
	NotificationRejected            NotificationType = "rejected"
	NotificationCancellation        NotificationType = "cancellation"
	NotificationReminder            NotificationType = "reminder"
)

// notificationTransitions lists, per current type, every type a notification
// may move to. Cancellation is terminal.
var notificationTransitions = map[NotificationType][]NotificationType{
	NotificationRequest: {
		NotificationBookingConfirmation,
		NotificationRejected,
		NotificationConfirmed,
		NotificationCancellation,
		NotificationReminder,
	},
	NotificationBookingConfirmation: {
		NotificationRejected,
		NotificationConfirmed,
		NotificationCancellation,
		NotificationReminder,
	},
	NotificationRejected: {
		NotificationBookingConfirmation,
		NotificationConfirmed,
		NotificationCancellation,
		NotificationReminder,
	},
	NotificationConfirmed: {
		NotificationBookingConfirmation,
		NotificationRejected,
		NotificationConfirmed,
		NotificationCancellation,
		NotificationReminder,
	},
	NotificationReminder: {
		NotificationBookingConfirmation,
		NotificationRejected,
		NotificationConfirmed,
		NotificationCancellation,
		NotificationReminder,
	},
	NotificationCancellation: {},
}

func (t NotificationType) IsValid() bool {
	_, ok := notificationTransitions[t]
	return ok
}

func (t NotificationType) CanTransitionTo(next NotificationType) bool {
	for _, allowed := range notificationTransitions[t] {
		if allowed == next {
			return true
		}
	}

	return false
}

// SourcesOf returns every type that may transition into next.
func SourcesOf(next NotificationType) []NotificationType {
	var sources []NotificationType

	for _, from := range AllNotificationTypes() {
		if from.CanTransitionTo(next) {
			sources = append(sources, from)
		}
	}

	return sources
}

func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		NotificationRequest,
		NotificationBookingConfirmation,
		NotificationConfirmed,
		NotificationRejected,
		NotificationCancellation,
		NotificationReminder,
	}
}

type Notification struct {
	ID                string           `json:"id"`
	BookingID         string           `json:"booking_id"`
	SenderEmail       string           `json:"sender_email"`
	ReceiverEmail     string           `json:"receiver_email"`
	LabSessionTitle   string           `json:"lab_session_title"`
	LabDate           string           `json:"lab_date"`
	LabStartTime      time.Time        `json:"lab_start_time"`
	LabEndTime        time.Time        `json:"lab_end_time"`
	Message           string           `json:"message"`
	Type              NotificationType `json:"type"`
	IsReceiverConfirm bool             `json:"is_receiver_confirm"`
	IsRead            bool             `json:"is_read"`
	IsLabWillGoingOn  bool             `json:"is_lab_will_going_on"`
	CreatedAt         time.Time        `json:"created_at"`
}

// NotificationPatch is a partial update; nil fields are left untouched.
type NotificationPatch struct {
	Type              *NotificationType
	IsReceiverConfirm *bool
	IsRead            *bool
	IsLabWillGoingOn  *bool
}

func (p NotificationPatch) Apply(n *Notification) {
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.IsReceiverConfirm != nil {
		n.IsReceiverConfirm = *p.IsReceiverConfirm
	}
	if p.IsRead != nil {
		n.IsRead = *p.IsRead
	}
	if p.IsLabWillGoingOn != nil {
		n.IsLabWillGoingOn = *p.IsLabWillGoingOn
	}
}

// NotificationFilter narrows receiver/sender listings.
type NotificationFilter struct {
	Type   *NotificationType
	IsRead *bool
}

func (f NotificationFilter) Matches(n Notification) bool {
	if f.Type != nil && n.Type != *f.Type {
		return false
	}
	if f.IsRead != nil && n.IsRead != *f.IsRead {
		return false
	}

	return true
}
