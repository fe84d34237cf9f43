package repository

import "github.com/skhartaye/SMOKI/internal/model"

// CaptureRepository defines the interface for persisted frame captures.
type CaptureRepository interface {
	Insert(c *model.Capture) (int64, error)
	GetRecent(limit int) ([]model.Capture, error)
	DeleteAll() error
}

// VehicleRepository defines the interface for vehicle and detection records.
type VehicleRepository interface {
	Register(licensePlate, vehicleType string) (int64, error)
	InsertDetection(det *model.VehicleDetection) (int64, error)
	GetTopViolators(limit int) ([]model.VehicleRanking, error)
}

// ViolationRepository defines the interface for violation records.
type ViolationRepository interface {
	Create(v *model.Violation) (int64, error)
	GetRecent(limit int) ([]model.Violation, error)
}

// NotificationRepository defines the interface for violation notifications.
type NotificationRepository interface {
	Create(n *model.Notification) (int64, error)
	GetUnread(limit int) ([]model.Notification, error)
	MarkRead(id int64) (bool, error)
}

// UserRepository defines the interface for account lookup and creation.
type UserRepository interface {
	GetByUsername(username string) (*model.User, error)
	Insert(u *model.User) (int64, error)
}
