package models

import "time"

type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithoutPassword returns a copy of the user with the password hash cleared.
func (u *User) WithoutPassword() *User {
	cp := *u
	cp.Password = ""
	return &cp
}
