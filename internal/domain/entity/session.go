package entity

// Session identidad autenticada que viaja explícitamente en cada llamada (nunca estado global).
type Session struct {
	UserID    string
	CompanyID string
	Role      string
}

// IsAdmin informa si la sesión tiene rol admin en su empresa.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
