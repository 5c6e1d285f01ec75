package entity

// Códigos de planes sembrados al iniciar el sistema.
const (
	PlanBasic  = "basic"
	PlanPro    = "pro"
	PlanAgency = "agency"
)

// Plan es dato de referencia inmutable (se siembra una vez, solo lectura después).
type Plan struct {
	ID         string
	Code       string
	Name       string
	PriceCents int64 // precio mensual en centavos
	MaxUsers   int
}

// DefaultPlans devuelve los planes que se siembran en la inicialización.
func DefaultPlans() []Plan {
	return []Plan{
		{Code: PlanBasic, Name: "Básico", PriceCents: 2900, MaxUsers: 1},
		{Code: PlanPro, Name: "Pro", PriceCents: 5900, MaxUsers: 3},
		{Code: PlanAgency, Name: "Agência", PriceCents: 9900, MaxUsers: 10},
	}
}
