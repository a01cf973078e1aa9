package usecase

import (
	"context"
	"time"

	"github.com/sanfelipe/obras-api/internal/application/ports"
	"github.com/sanfelipe/obras-api/internal/domain"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF de gastos aprobados para los roles de
// supervisión (MODERADOR y CONTABILIDAD).
type ReportUseCase struct {
	expenseRepo repository.ExpenseRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	generator   ports.ExpenseReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	expenseRepo repository.ExpenseRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	generator ports.ExpenseReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

// ExpenseReport genera el PDF de gastos APROBADO, opcionalmente acotado a una
// obra y a un rango de fechas. Solo roles con visión global.
func (uc *ReportUseCase) ExpenseReport(ctx context.Context, projectID string, startDate, endDate *time.Time, actorRole entity.Role) ([]byte, error) {
	if !actorRole.CanViewAll() {
		return nil, domain.ErrForbidden
	}

	data := &ports.ExpenseReportData{Users: map[string]*entity.User{}}

	if projectID != "" {
		project, err := uc.projectRepo.GetByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, domain.ErrNotFound
		}
		data.Project = project
	}

	expenses, err := uc.expenseRepo.List(ctx, repository.ExpenseFilter{
		ProjectID: projectID,
		Status:    entity.ExpenseStatusAprobado,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, err
	}
	data.Expenses = expenses

	// Resolver nombres de quienes registraron los gastos.
	for _, e := range expenses {
		if _, ok := data.Users[e.UserID]; ok {
			continue
		}
		u, err := uc.userRepo.GetByID(ctx, e.UserID)
		if err != nil {
			return nil, err
		}
		if u != nil {
			data.Users[e.UserID] = u
		}
	}

	return uc.generator.GenerateExpenseReport(ctx, data)
}
