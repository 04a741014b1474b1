package models

// Credentials are what the login and register endpoints accept.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
