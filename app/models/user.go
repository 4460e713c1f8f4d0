package models

// User is the single operator account. The password is a bcrypt hash,
// never serialised back out to API clients.
type User struct {
	Username     string `json:"username" validate:"required,min=1,max=64"`
	PasswordHash string `json:"passwordHash"`
}
