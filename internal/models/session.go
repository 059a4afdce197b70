package models

import "time"

// Session is an issued bearer token with a fixed expiry.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// Credential is a stored username and salted password hash. The hash never
// leaves the auth service.
type Credential struct {
	Username     string
	PasswordHash string
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the minted token and its expiry.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PasswordRequest is the body of a set-password call.
type PasswordRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
