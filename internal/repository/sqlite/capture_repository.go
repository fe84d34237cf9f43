package sqlite

import (
	"fmt"

	"github.com/skhartaye/SMOKI/internal/model"
	"github.com/skhartaye/SMOKI/internal/repository"
)

type captureRepository struct {
	db *DB
}

// NewCaptureRepository creates a capture repository backed by SQLite.
func NewCaptureRepository(db *DB) repository.CaptureRepository {
	return &captureRepository{db: db}
}

func (r *captureRepository) Insert(c *model.Capture) (int64, error) {
	result, err := r.db.Conn().Exec(
		`INSERT INTO captures (filename, timestamp, filepath, filesize) VALUES (?, ?, ?, ?)`,
		c.Filename, c.Timestamp, c.FilePath, c.FileSize,
	)
	if err != nil {
		return 0, fmt.Errorf("insert capture: %w", err)
	}
	return result.LastInsertId()
}

func (r *captureRepository) GetRecent(limit int) ([]model.Capture, error) {
	rows, err := r.db.Conn().Query(
		`SELECT id, filename, timestamp, filepath, filesize
		 FROM captures ORDER BY timestamp DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query captures: %w", err)
	}
	defer rows.Close()

	var captures []model.Capture
	for rows.Next() {
		var c model.Capture
		if err := rows.Scan(&c.ID, &c.Filename, &c.Timestamp, &c.FilePath, &c.FileSize); err != nil {
			return nil, fmt.Errorf("scan capture: %w", err)
		}
		captures = append(captures, c)
	}
	return captures, rows.Err()
}

func (r *captureRepository) DeleteAll() error {
	_, err := r.db.Conn().Exec(`DELETE FROM captures`)
	if err != nil {
		return fmt.Errorf("delete captures: %w", err)
	}
	return nil
}
