package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de una obra.
const (
	ProjectStatusActivo     = "ACTIVO"
	ProjectStatusPausado    = "PAUSADO"
	ProjectStatusFinalizado = "FINALIZADO"
)

// Project representa una obra con presupuesto y gasto acumulado.
// Invariante: CurrentSpent es la suma de los montos de todos los gastos
// APROBADO de la obra; solo crece vía aprobaciones (incremento atómico en DB).
type Project struct {
	ID           string
	Name         string
	Code         string // único, mayúsculas, [A-Z0-9-]
	Location     string
	Description  string
	Budget       decimal.Decimal
	CurrentSpent decimal.Decimal
	StartDate    time.Time
	EndDate      *time.Time // si existe, posterior a StartDate
	Status       string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBudgetExceeded indica si el gasto acumulado superó el presupuesto.
func (p *Project) IsBudgetExceeded() bool {
	return p.CurrentSpent.GreaterThan(p.Budget)
}

// BudgetUsagePercentage porcentaje del presupuesto consumido (0 si no hay presupuesto).
func (p *Project) BudgetUsagePercentage() decimal.Decimal {
	if p.Budget.IsZero() {
		return decimal.Zero
	}
	return p.CurrentSpent.Div(p.Budget).Mul(decimal.NewFromInt(100))
}
