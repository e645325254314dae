package domain

import "time"

type User struct {
	ID           int64     `json:"idUser"`
	FullName     string    `json:"fullName"`
	Age          int       `json:"age"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Token        *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
