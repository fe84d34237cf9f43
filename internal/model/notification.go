package model

import "time"

// Notification is an alert raised for a violation, shown in the dashboard
// ribbon until an operator marks it read. Severity and license plate come
// from the underlying violation.
type Notification struct {
	ID               int64     `json:"id"`
	ViolationID      int64     `json:"violation_id"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	NotificationType string    `json:"notification_type"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
	Severity         string    `json:"severity"`
	LicensePlate     string    `json:"license_plate"`
}
