package domain

import "time"

// User models a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// Token is the bearer credential handed out by a successful login.
type Token struct {
	AccessToken string
	TokenType   string
}

const TokenTypeBearer = "bearer"
