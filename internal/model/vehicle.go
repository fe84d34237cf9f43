package model

import "time"

// VehicleDetection represents one sighting of a vehicle reported by the
// inference pipeline.
type VehicleDetection struct {
	ID            int64     `json:"id"`
	VehicleID     int64     `json:"vehicle_id"`
	LicensePlate  string    `json:"license_plate"`
	VehicleType   string    `json:"vehicle_type"`
	Location      string    `json:"location"`
	Confidence    float64   `json:"confidence"`
	SmokeDetected bool      `json:"smoke_detected"`
	EmissionLevel string    `json:"emission_level"`
	ImagePath     string    `json:"image_path,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Violation represents an emission violation recorded against a vehicle.
type Violation struct {
	ID            int64     `json:"id"`
	LicensePlate  string    `json:"license_plate"`
	ViolationType string    `json:"violation_type"`
	Severity      string    `json:"severity"`
	Description   string    `json:"description,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// VehicleRanking summarizes how often a vehicle has violated.
type VehicleRanking struct {
	LicensePlate   string    `json:"license_plate"`
	VehicleType    string    `json:"vehicle_type"`
	ViolationCount int       `json:"violation_count"`
	LastSeen       time.Time `json:"last_seen"`
}
