package ports

import (
	"context"

	"github.com/sanfelipe/obras-api/internal/domain/entity"
)

// ExpenseReportData datos ya resueltos para el reporte PDF de gastos.
type ExpenseReportData struct {
	Project  *entity.Project // nil => reporte global (todas las obras)
	Expenses []*entity.Expense
	// Usuarios referenciados por los gastos, indexados por ID, para mostrar nombres.
	Users map[string]*entity.User
}

// ExpenseReportGenerator define el puerto de salida para generar el PDF del
// reporte de gastos aprobados (lo implementa infrastructure/pdf con Maroto).
type ExpenseReportGenerator interface {
	GenerateExpenseReport(ctx context.Context, data *ExpenseReportData) ([]byte, error)
}
