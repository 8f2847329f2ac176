package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Location     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
