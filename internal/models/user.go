package models

import "time"

// User is an account row. Authentication itself lives elsewhere; the API
// only resolves bearer tokens to user IDs.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
