package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skhartaye/SMOKI/internal/dto"
	"github.com/skhartaye/SMOKI/internal/logger"
	"github.com/skhartaye/SMOKI/internal/model"
	"github.com/skhartaye/SMOKI/internal/repository"
)

// DetectVehicleHandler handles POST /api/vehicles/detect: registers the
// vehicle, records the detection, and opens a violation when smoke was
// detected. The inference pipeline calls this asynchronously; it never sits
// on the frame ingest path.
func DetectVehicleHandler(vehicles repository.VehicleRepository, violations repository.ViolationRepository, notifications repository.NotificationRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.VehicleDetectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.LicensePlate == "" || req.Location == "" {
			http.Error(w, "license_plate and location are required", http.StatusBadRequest)
			return
		}
		if req.VehicleType == "" {
			req.VehicleType = "unknown"
		}
		if req.EmissionLevel == "" {
			req.EmissionLevel = "normal"
		}

		vehicleID, err := vehicles.Register(req.LicensePlate, req.VehicleType)
		if err != nil {
			logger.Error("Error registering vehicle %s: %v", req.LicensePlate, err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		detectionID, err := vehicles.InsertDetection(&model.VehicleDetection{
			VehicleID:     vehicleID,
			Location:      req.Location,
			Confidence:    req.Confidence,
			SmokeDetected: req.SmokeDetected,
			EmissionLevel: req.EmissionLevel,
			ImagePath:     req.ImagePath,
		})
		if err != nil {
			logger.Error("Error recording detection for %s: %v", req.LicensePlate, err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		violationCreated := false
		if req.SmokeDetected {
			violation := &model.Violation{
				LicensePlate:  req.LicensePlate,
				ViolationType: "smoke_emission",
				Severity:      req.EmissionLevel,
				Description:   "Smoke detected at " + req.Location,
			}
			violationID, err := violations.Create(violation)
			if err != nil {
				logger.Error("Error creating violation for %s: %v", req.LicensePlate, err)
			} else {
				violationCreated = true
				notifyViolation(notifications, violationID, violation, logger)
			}
		}

		writeJSON(w, http.StatusOK, dto.DetectionResponse{
			Success:          true,
			DetectionID:      detectionID,
			ViolationCreated: violationCreated,
		})
	}
}

// CreateViolationHandler handles POST /api/vehicles/violations. Every
// reported violation also raises a notification for the dashboard ribbon.
func CreateViolationHandler(violations repository.ViolationRepository, notifications repository.NotificationRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.ViolationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.LicensePlate == "" || req.ViolationType == "" || req.Severity == "" {
			http.Error(w, "license_plate, violation_type and severity are required", http.StatusBadRequest)
			return
		}

		violation := &model.Violation{
			LicensePlate:  req.LicensePlate,
			ViolationType: req.ViolationType,
			Severity:      req.Severity,
			Description:   req.Description,
		}
		id, err := violations.Create(violation)
		if err != nil {
			logger.Error("Error creating violation: %v", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		notificationID := notifyViolation(notifications, id, violation, logger)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"violation_id":    id,
			"notification_id": notificationID,
		})
	}
}

// notifyViolation raises a notification for a freshly created violation. A
// notification failure is logged but never fails the violation itself.
func notifyViolation(notifications repository.NotificationRepository, violationID int64, v *model.Violation, logger *logger.Logger) int64 {
	message := v.ViolationType
	if v.Description != "" {
		message += " - " + v.Description
	} else {
		message += " - No description"
	}

	id, err := notifications.Create(&model.Notification{
		ViolationID:      violationID,
		Title:            "Violation: " + v.LicensePlate,
		Message:          message,
		NotificationType: "violation",
	})
	if err != nil {
		logger.Error("Error creating notification for violation %d: %v", violationID, err)
		return 0
	}
	return id
}

// UnreadNotificationsHandler handles GET /api/vehicles/notifications/unread.
func UnreadNotificationsHandler(notifications repository.NotificationRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryLimit(r, 10)
		list, err := notifications.GetUnread(limit)
		if err != nil {
			logger.Error("Error querying notifications: %v", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []model.Notification{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// MarkNotificationReadHandler handles POST /api/vehicles/notifications/{id}/read.
func MarkNotificationReadHandler(notifications repository.NotificationRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid notification id", http.StatusBadRequest)
			return
		}

		found, err := notifications.MarkRead(id)
		if err != nil {
			logger.Error("Error marking notification %d read: %v", id, err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, "Notification not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "notification_id": id})
	}
}

// RecentViolationsHandler handles GET /api/vehicles/violations/recent.
func RecentViolationsHandler(violations repository.ViolationRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryLimit(r, 20)
		list, err := violations.GetRecent(limit)
		if err != nil {
			logger.Error("Error querying violations: %v", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []model.Violation{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// VehicleRankingHandler handles GET /api/vehicles/ranking: top violators.
func VehicleRankingHandler(vehicles repository.VehicleRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryLimit(r, 10)
		rankings, err := vehicles.GetTopViolators(limit)
		if err != nil {
			logger.Error("Error querying vehicle ranking: %v", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if rankings == nil {
			rankings = []model.VehicleRanking{}
		}
		writeJSON(w, http.StatusOK, rankings)
	}
}

func queryLimit(r *http.Request, def int) int {
	if value := r.URL.Query().Get("limit"); value != "" {
		if limit, err := strconv.Atoi(value); err == nil && limit > 0 {
			return limit
		}
	}
	return def
}
