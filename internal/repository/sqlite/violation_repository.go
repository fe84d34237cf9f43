package sqlite

import (
	"fmt"

	"github.com/skhartaye/SMOKI/internal/model"
	"github.com/skhartaye/SMOKI/internal/repository"
)

type violationRepository struct {
	db *DB
}

// NewViolationRepository creates a violation repository backed by SQLite.
func NewViolationRepository(db *DB) repository.ViolationRepository {
	return &violationRepository{db: db}
}

func (r *violationRepository) Create(v *model.Violation) (int64, error) {
	result, err := r.db.Conn().Exec(
		`INSERT INTO violations (license_plate, violation_type, severity, description)
		 VALUES (?, ?, ?, ?)`,
		v.LicensePlate, v.ViolationType, v.Severity, v.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("insert violation: %w", err)
	}
	return result.LastInsertId()
}

func (r *violationRepository) GetRecent(limit int) ([]model.Violation, error) {
	rows, err := r.db.Conn().Query(
		`SELECT id, license_plate, violation_type, severity, COALESCE(description, ''), timestamp
		 FROM violations ORDER BY timestamp DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query violations: %w", err)
	}
	defer rows.Close()

	var violations []model.Violation
	for rows.Next() {
		var v model.Violation
		if err := rows.Scan(&v.ID, &v.LicensePlate, &v.ViolationType, &v.Severity, &v.Description, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan violation: %w", err)
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}
