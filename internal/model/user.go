package model

import (
	"time"
)

type User struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	IsVerified       bool      `db:"is_verified" json:"isVerified"`
	VerificationCode *string   `db:"verification_code" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

func (u *User) HasPendingVerification() bool {
	return !u.IsVerified && u.VerificationCode != nil && *u.VerificationCode != ""
}
