package repository

import (
	"context"
	"time"

	"github.com/sanfelipe/obras-api/internal/domain/entity"
)

// ExpenseFilter filtros de listado de gastos. Los campos vacíos no filtran.
// ProjectIDs acota a un conjunto de obras (scope de ADMIN_OBRA); UserID acota
// a los gastos propios (TRABAJADOR/CONTABILIDAD asignada).
type ExpenseFilter struct {
	ProjectID  string
	ProjectIDs []string
	UserID     string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
}

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de la
	// transacción de aprobación/rechazo para serializar resoluciones del mismo gasto.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Expense, error)
	// Resolve persiste el desenlace: status, resolved_by, resolved_at y
	// rejection_reason (vacío al aprobar).
	Resolve(ctx context.Context, e *entity.Expense) error
	// List gastos según filtro, más recientes primero (created_at DESC).
	List(ctx context.Context, f ExpenseFilter) ([]*entity.Expense, error)
}
