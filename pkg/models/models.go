package models

import "time"

// NotificationType enumerates outbound notification categories
type NotificationType string

const (
	NotificationAttendance NotificationType = "attendance"
	NotificationGrade      NotificationType = "grade"
	NotificationBehavior   NotificationType = "behavior"
	NotificationGeneral    NotificationType = "general"
	NotificationEmergency  NotificationType = "emergency"
)

// NotificationPriority enumerates delivery priorities
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// Notification is an outbound parent notification payload
type Notification struct {
	Type              NotificationType         `json:"type"`
	RecipientEmail    string                   `json:"recipient_email"`
	RecipientPhone    string                   `json:"recipient_phone,omitempty"`
	Subject           string                   `json:"subject"`
	Body              string                   `json:"body"`
	TemplateID        string                   `json:"template_id,omitempty"`
	TemplateVariables map[string]string        `json:"template_variables,omitempty"`
	Priority          NotificationPriority     `json:"priority"`
	Attachments       []map[string]interface{} `json:"attachments"`
}

// RegisteredDevice is an external consumer of sanitized data. Capability
// membership decides which field categories it may receive.
type RegisteredDevice struct {
	DeviceID     string    `json:"device_id"`
	DeviceType   string    `json:"device_type"`
	Name         string    `json:"name,omitempty"`
	Capabilities []string  `json:"capabilities"`
	RegisteredAt time.Time `json:"registered_at"`
	LastSeen     time.Time `json:"last_seen,omitempty"`
	Revoked      bool      `json:"revoked,omitempty"`
}

// SanitizationEvent is the audit trail entry recorded for every pass
// through a sanitization entry point
type SanitizationEvent struct {
	ID            string    `json:"id"`
	DeviceID      string    `json:"device_id"`
	DeviceType    string    `json:"device_type,omitempty"`
	DataType      string    `json:"data_type"`
	Purpose       string    `json:"purpose"`
	FieldsDropped int       `json:"fields_dropped"`
	FieldsMasked  int       `json:"fields_masked"`
	Outcome       string    `json:"outcome"` // ok, denied, degraded
	Detail        string    `json:"detail,omitempty"`
	Recorded      time.Time `json:"recorded"`
}

// Audit outcomes
const (
	OutcomeOK       = "ok"
	OutcomeDenied   = "denied"
	OutcomeDegraded = "degraded"
)
