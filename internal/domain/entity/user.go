package entity

import "time"

// User representa un usuario del sistema. Nunca se elimina: se desactiva con IsActive.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca el secreto en claro
	FullName     string
	Role         Role
	Area         string
	DNI          string
	Age          int
	Gender       string
	Phone        string
	Email        string
	Address      string
	ProfilePhoto string // URL opcional
	IsActive     bool
	CreatedBy    string // ID del usuario que lo registró; vacío para el seed inicial
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
