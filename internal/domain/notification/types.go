package notification

import (
	"errors"
	"strings"
)

var (
	ErrMissingUser      = errors.New("notification must belong to a user")
	ErrMissingID        = errors.New("notification id is required")
	ErrMissingType      = errors.New("notification type is required")
	ErrUnknownType      = errors.New("unknown notification type")
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrMessageTooLong   = errors.New("message exceeds maximum length")
	ErrLinkTooLong      = errors.New("link exceeds maximum length")
	ErrMissingTimestamp = errors.New("notification timestamp is required")
)

// Type is the kind of event a notification reports. Values outside the known
// set are kept verbatim so newer producers do not break older consumers.
type Type string

const (
	TypeNewJob             Type = "new-job"
	TypeNewApplication     Type = "new-application"
	TypeStatusChange       Type = "status-change"
	TypeReviewApproved     Type = "review-approved"
	TypeReviewRejected     Type = "review-rejected"
	TypeVerificationBooked Type = "verification-booked"
	TypeCourseReminder     Type = "course-reminder"
	TypeNewMessage         Type = "new-message"
	TypePaymentReceived    Type = "payment-received"
	TypeMilestoneCompleted Type = "milestone-completed"

	TypeUnclassified Type = "unclassified"
)

var titles = map[Type]string{
	TypeNewJob:             "New job posted",
	TypeNewApplication:     "New application",
	TypeStatusChange:       "Status updated",
	TypeReviewApproved:     "Review approved",
	TypeReviewRejected:     "Review rejected",
	TypeVerificationBooked: "Verification booked",
	TypeCourseReminder:     "Course reminder",
	TypeNewMessage:         "New message",
	TypePaymentReceived:    "Payment received",
	TypeMilestoneCompleted: "Milestone completed",
}

// KnownTypes lists the types producers may create, in display order.
func KnownTypes() []Type {
	return []Type{
		TypeNewJob, TypeNewApplication, TypeStatusChange, TypeReviewApproved, TypeReviewRejected,
		TypeVerificationBooked, TypeCourseReminder, TypeNewMessage, TypePaymentReceived, TypeMilestoneCompleted,
	}
}

// ParseType never fails: unknown values are preserved and report IsKnown() == false.
func ParseType(raw string) Type {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return TypeUnclassified
	}
	return Type(t)
}

func (t Type) IsKnown() bool {
	_, ok := titles[t]
	return ok
}

// Classify folds unknown values into TypeUnclassified.
func (t Type) Classify() Type {
	if t.IsKnown() {
		return t
	}
	return TypeUnclassified
}

func (t Type) Title() string {
	if title, ok := titles[t]; ok {
		return title
	}
	return "Notification"
}

func (t Type) String() string { return string(t) }
