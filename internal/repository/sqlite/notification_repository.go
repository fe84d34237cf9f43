package sqlite

import (
	"fmt"

	"github.com/skhartaye/SMOKI/internal/model"
	"github.com/skhartaye/SMOKI/internal/repository"
)

type notificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a notification repository backed by SQLite.
func NewNotificationRepository(db *DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *model.Notification) (int64, error) {
	if n.NotificationType == "" {
		n.NotificationType = "violation"
	}
	result, err := r.db.Conn().Exec(
		`INSERT INTO notifications (violation_id, title, message, notification_type)
		 VALUES (?, ?, ?, ?)`,
		n.ViolationID, n.Title, n.Message, n.NotificationType,
	)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return result.LastInsertId()
}

// GetUnread returns the newest unread notifications with the severity and
// license plate of the underlying violation.
func (r *notificationRepository) GetUnread(limit int) ([]model.Notification, error) {
	rows, err := r.db.Conn().Query(
		`SELECT n.id, n.violation_id, n.title, n.message, n.notification_type,
		        n.is_read, n.created_at, v.severity, v.license_plate
		 FROM notifications n
		 JOIN violations v ON v.id = n.violation_id
		 WHERE n.is_read = 0
		 ORDER BY n.created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.ViolationID, &n.Title, &n.Message, &n.NotificationType,
			&n.IsRead, &n.CreatedAt, &n.Severity, &n.LicensePlate); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead marks the notification read. Returns false when no such
// notification exists.
func (r *notificationRepository) MarkRead(id int64) (bool, error) {
	result, err := r.db.Conn().Exec(`UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return affected > 0, nil
}
