package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/skhartaye/SMOKI/internal/model"
	"github.com/skhartaye/SMOKI/internal/repository"
)

type userRepository struct {
	db *DB
}

// NewUserRepository creates a user repository backed by SQLite.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

// GetByUsername returns the user or (nil, nil) when no such user exists.
func (r *userRepository) GetByUsername(username string) (*model.User, error) {
	var u model.User
	err := r.db.Conn().QueryRow(
		`SELECT id, username, hashed_password, role, full_name FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.HashedPassword, &u.Role, &u.FullName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) Insert(u *model.User) (int64, error) {
	result, err := r.db.Conn().Exec(
		`INSERT INTO users (username, hashed_password, role, full_name) VALUES (?, ?, ?, ?)`,
		u.Username, u.HashedPassword, u.Role, u.FullName,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return result.LastInsertId()
}
