package entity

import "time"

// Company representa una empresa/tenant del sistema. Es dueña de su propio catálogo y de una única suscripción.
type Company struct {
	ID        string
	Name      string
	Contact   string // WhatsApp o teléfono de contacto
	CreatedAt time.Time
}
