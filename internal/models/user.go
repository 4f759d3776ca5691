package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Avatar       string    `json:"avatar"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// optional Telegram mirror for notifications
	TelegramChatID int64 `json:"-"`
	TelegramNotify bool  `json:"-"`
}

// UserRef is the joined subset of a user embedded in enriched responses.
type UserRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Actor is the authenticated identity the middleware resolves from a token.
type Actor struct {
	UserID int64
	Role   string
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserStats struct {
	Tasks     int `json:"tasks"`
	Comments  int `json:"comments"`
	Completed int `json:"completed"`
}
