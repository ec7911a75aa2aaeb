package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleOperario = "operario"
)

// User usuario del sistema (operarios de producción y administración).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
