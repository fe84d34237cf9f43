package model

// User represents an account allowed to use the authenticated API.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	HashedPassword string `json:"-"`
	Role           string `json:"role"`
	FullName       string `json:"full_name"`
}
