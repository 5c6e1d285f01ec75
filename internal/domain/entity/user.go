package entity

import (
	"strings"
	"time"
)

// Roles válidos para Membership. Por ahora solo se modela admin.
const (
	RoleAdmin = "admin"
)

// User representa un usuario del sistema. Pertenece a una o más Company vía Membership.
type User struct {
	ID           string
	Email        string // siempre normalizado (ver NormalizeEmail)
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}

// Membership vincula un usuario con una empresa y su rol. PK (UserID, CompanyID).
type Membership struct {
	UserID      string
	CompanyID   string
	Role        string
	CompanyName string // solo se llena en lecturas con JOIN
}

// NormalizeEmail pasa el email a minúsculas y quita espacios.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
