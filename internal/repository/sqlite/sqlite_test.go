package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/skhartaye/SMOKI/internal/model"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("Bad test timestamp %q: %v", value, err)
	}
	return ts
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepository(t *testing.T) {
	users := NewUserRepository(newTestDB(t))

	missing, err := users.GetByUsername("nobody")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown user, got %+v", missing)
	}

	id, err := users.Insert(&model.User{
		Username:       "inspector",
		HashedPassword: "hash",
		Role:           "admin",
		FullName:       "Lead Inspector",
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected non-zero id")
	}

	user, err := users.GetByUsername("inspector")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if user == nil || user.Role != "admin" || user.HashedPassword != "hash" {
		t.Errorf("Unexpected user: %+v", user)
	}
}

func TestVehicleRepository_RegisterIsIdempotent(t *testing.T) {
	vehicles := NewVehicleRepository(newTestDB(t))

	first, err := vehicles.Register("ABC-123", "truck")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	second, err := vehicles.Register("ABC-123", "truck")
	if err != nil {
		t.Fatalf("Second register failed: %v", err)
	}
	if first != second {
		t.Errorf("Re-registering returned id %d, expected %d", second, first)
	}
}

func TestVehicleRepository_DetectionsAndRanking(t *testing.T) {
	db := newTestDB(t)
	vehicles := NewVehicleRepository(db)
	violations := NewViolationRepository(db)

	vehicleID, err := vehicles.Register("ABC-123", "truck")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := vehicles.Register("XYZ-789", "bus"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := vehicles.InsertDetection(&model.VehicleDetection{
		VehicleID:     vehicleID,
		Location:      "EDSA corner Main",
		Confidence:    0.93,
		SmokeDetected: true,
		EmissionLevel: "high",
	}); err != nil {
		t.Fatalf("InsertDetection failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := violations.Create(&model.Violation{
			LicensePlate:  "ABC-123",
			ViolationType: "smoke_emission",
			Severity:      "high",
		}); err != nil {
			t.Fatalf("Create violation failed: %v", err)
		}
	}
	if _, err := violations.Create(&model.Violation{
		LicensePlate:  "XYZ-789",
		ViolationType: "smoke_emission",
		Severity:      "moderate",
	}); err != nil {
		t.Fatalf("Create violation failed: %v", err)
	}

	rankings, err := vehicles.GetTopViolators(10)
	if err != nil {
		t.Fatalf("GetTopViolators failed: %v", err)
	}
	if len(rankings) != 2 {
		t.Fatalf("Got %d rankings, expected 2", len(rankings))
	}
	if rankings[0].LicensePlate != "ABC-123" || rankings[0].ViolationCount != 2 {
		t.Errorf("Top violator = %+v, expected ABC-123 with 2 violations", rankings[0])
	}

	recent, err := violations.GetRecent(2)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("GetRecent(2) returned %d rows", len(recent))
	}
}

func TestNotificationRepository(t *testing.T) {
	db := newTestDB(t)
	violations := NewViolationRepository(db)
	notifications := NewNotificationRepository(db)

	violationID, err := violations.Create(&model.Violation{
		LicensePlate:  "ABC-123",
		ViolationType: "smoke_emission",
		Severity:      "high",
		Description:   "thick smoke",
	})
	if err != nil {
		t.Fatalf("Create violation failed: %v", err)
	}

	id, err := notifications.Create(&model.Notification{
		ViolationID: violationID,
		Title:       "Violation: ABC-123",
		Message:     "smoke_emission - thick smoke",
	})
	if err != nil {
		t.Fatalf("Create notification failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected non-zero id")
	}

	unread, err := notifications.GetUnread(10)
	if err != nil {
		t.Fatalf("GetUnread failed: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("GetUnread returned %d rows, expected 1", len(unread))
	}
	n := unread[0]
	if n.ViolationID != violationID || n.Severity != "high" || n.LicensePlate != "ABC-123" {
		t.Errorf("Unexpected notification: %+v", n)
	}
	if n.NotificationType != "violation" {
		t.Errorf("NotificationType = %q, expected the violation default", n.NotificationType)
	}

	found, err := notifications.MarkRead(id)
	if err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if !found {
		t.Error("MarkRead reported the notification missing")
	}

	unread, err = notifications.GetUnread(10)
	if err != nil {
		t.Fatalf("GetUnread failed: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("Expected no unread notifications after MarkRead, got %d", len(unread))
	}

	found, err = notifications.MarkRead(9999)
	if err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if found {
		t.Error("MarkRead(9999) reported success for a missing notification")
	}
}

func TestCaptureRepository(t *testing.T) {
	captures := NewCaptureRepository(newTestDB(t))

	empty, err := captures.GetRecent(5)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no captures, got %d", len(empty))
	}

	id, err := captures.Insert(&model.Capture{
		Filename:  "2026-01-02_15-04_05.000.jpg",
		Timestamp: mustTime(t, "2026-01-02T15:04:05Z"),
		FilePath:  "/images/2026-01-02_15-04_05.000.jpg",
		FileSize:  1024,
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected non-zero id")
	}

	got, err := captures.GetRecent(5)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(got) != 1 || got[0].FileSize != 1024 {
		t.Errorf("Unexpected captures: %+v", got)
	}

	if err := captures.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	got, err = captures.GetRecent(5)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty table after DeleteAll, got %d rows", len(got))
	}
}
