package domain

import "time"

// Principal is the authenticated actor whose identity scopes all data access.
// It is created and destroyed by the auth service; everything downstream only
// observes transitions (present, absent, identity change).
type Principal struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// User is the stored identity record backing a Principal.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  time.Time
}

// Principal derives the externally visible identity from a stored user.
func (u User) Principal() Principal {
	return Principal{
		ID:          u.ID,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// Session models a logged-in session. Sessions are revocable server-side; the
// access token is only honored while its session still exists.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}
