package users

import "time"

// User represents a registered account. The password is stored only as a
// bcrypt hash and is never echoed back to the client.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
