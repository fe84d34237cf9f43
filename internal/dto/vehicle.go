package dto

// VehicleDetectionRequest is reported by the inference pipeline when a
// vehicle has been identified.
type VehicleDetectionRequest struct {
	LicensePlate  string  `json:"license_plate"`
	VehicleType   string  `json:"vehicle_type"`
	Location      string  `json:"location"`
	Confidence    float64 `json:"confidence"`
	SmokeDetected bool    `json:"smoke_detected"`
	EmissionLevel string  `json:"emission_level"`
	ImagePath     string  `json:"image_path,omitempty"`
}

// ViolationRequest records a violation against a vehicle.
type ViolationRequest struct {
	LicensePlate  string `json:"license_plate"`
	ViolationType string `json:"violation_type"`
	Severity      string `json:"severity"`
	Description   string `json:"description,omitempty"`
}

// DetectionResponse acknowledges a reported detection.
type DetectionResponse struct {
	Success          bool  `json:"success"`
	DetectionID      int64 `json:"detection_id"`
	ViolationCreated bool  `json:"violation_created"`
}
