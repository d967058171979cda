package models

// User is kept for a future authentication layer; no route exposes it yet.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
