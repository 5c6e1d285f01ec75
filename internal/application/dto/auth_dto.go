package dto

import "time"

// SignupRequest alta de empresa con su usuario administrador.
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"company_name" validate:"required"`
	Contact     string `json:"contact,omitempty"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse identidad autenticada.
type SessionResponse struct {
	UserID      string `json:"user_id"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name,omitempty"`
	Role        string `json:"role"`
}

// LoginResponse token firmado más la sesión que transporta.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// SubscriptionResponse estado de la suscripción de la empresa.
type SubscriptionResponse struct {
	Active    bool       `json:"active"`
	Status    string     `json:"status"`
	PlanCode  string     `json:"plan_code,omitempty"`
	PlanName  string     `json:"plan_name,omitempty"`
	MaxUsers  int        `json:"max_users,omitempty"`
	PeriodEnd *time.Time `json:"period_end,omitempty"`
}
