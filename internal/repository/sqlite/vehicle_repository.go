package sqlite

import (
	"fmt"

	"github.com/skhartaye/SMOKI/internal/model"
	"github.com/skhartaye/SMOKI/internal/repository"
)

type vehicleRepository struct {
	db *DB
}

// NewVehicleRepository creates a vehicle repository backed by SQLite.
func NewVehicleRepository(db *DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

// Register inserts the vehicle if unseen and refreshes last_seen otherwise.
// Returns the vehicle row id.
func (r *vehicleRepository) Register(licensePlate, vehicleType string) (int64, error) {
	_, err := r.db.Conn().Exec(
		`INSERT INTO vehicles (license_plate, vehicle_type) VALUES (?, ?)
		 ON CONFLICT(license_plate) DO UPDATE SET last_seen = CURRENT_TIMESTAMP`,
		licensePlate, vehicleType,
	)
	if err != nil {
		return 0, fmt.Errorf("register vehicle: %w", err)
	}

	var id int64
	err = r.db.Conn().QueryRow(
		`SELECT id FROM vehicles WHERE license_plate = ?`, licensePlate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("lookup vehicle: %w", err)
	}
	return id, nil
}

func (r *vehicleRepository) InsertDetection(det *model.VehicleDetection) (int64, error) {
	result, err := r.db.Conn().Exec(
		`INSERT INTO vehicle_detections
		 (vehicle_id, location, confidence, smoke_detected, emission_level, image_path)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		det.VehicleID, det.Location, det.Confidence, det.SmokeDetected, det.EmissionLevel, det.ImagePath,
	)
	if err != nil {
		return 0, fmt.Errorf("insert detection: %w", err)
	}
	return result.LastInsertId()
}

func (r *vehicleRepository) GetTopViolators(limit int) ([]model.VehicleRanking, error) {
	rows, err := r.db.Conn().Query(
		`SELECT v.license_plate, v.vehicle_type, COUNT(viol.id) AS violation_count, v.last_seen
		 FROM vehicles v
		 JOIN violations viol ON viol.license_plate = v.license_plate
		 GROUP BY v.license_plate
		 ORDER BY violation_count DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top violators: %w", err)
	}
	defer rows.Close()

	var rankings []model.VehicleRanking
	for rows.Next() {
		var rk model.VehicleRanking
		if err := rows.Scan(&rk.LicensePlate, &rk.VehicleType, &rk.ViolationCount, &rk.LastSeen); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		rankings = append(rankings, rk)
	}
	return rankings, rows.Err()
}
