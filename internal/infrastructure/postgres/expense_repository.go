package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sanfelipe/obras-api/internal/domain"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, project_id, user_id, date, description, amount, category, status,
	receipt_url, receipt_public_id, resolved_by, resolved_at, rejection_reason, created_at, updated_at`

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto nuevo.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, project_id, user_id, date, description, amount, category, status,
			receipt_url, receipt_public_id, resolved_by, resolved_at, rejection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProjectID, e.UserID, e.Date, e.Description, e.Amount, e.Category, e.Status,
		e.ReceiptURL, e.ReceiptPublicID, e.ResolvedBy, e.ResolvedAt, e.RejectionReason,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID; nil si no existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	return r.scanOne(ctx, query, id, "get expense by id")
}

// GetByIDForUpdate bloquea la fila del gasto (SELECT FOR UPDATE). Usar dentro
// de la transacción de resolución para serializar aprobaciones del mismo gasto.
func (r *ExpenseRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id, "lock expense")
}

// Resolve persiste el desenlace del gasto: status, resolución y razón de rechazo.
func (r *ExpenseRepo) Resolve(ctx context.Context, e *entity.Expense) error {
	query := `
		UPDATE expenses
		SET status = $2, resolved_by = $3, resolved_at = $4, rejection_reason = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Status, e.ResolvedBy, e.ResolvedAt, e.RejectionReason, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("resolve expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List gastos según filtro, más recientes primero.
func (r *ExpenseRepo) List(ctx context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ProjectID != "" {
		conds = append(conds, "project_id = "+arg(f.ProjectID))
	}
	if len(f.ProjectIDs) > 0 {
		conds = append(conds, "project_id = ANY("+arg(f.ProjectIDs)+")")
	}
	if f.UserID != "" {
		conds = append(conds, "user_id = "+arg(f.UserID))
	}
	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	if f.StartDate != nil {
		conds = append(conds, "date >= "+arg(*f.StartDate))
	}
	if f.EndDate != nil {
		conds = append(conds, "date <= "+arg(*f.EndDate))
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *ExpenseRepo) scanOne(ctx context.Context, query, id, op string) (*entity.Expense, error) {
	var e entity.Expense
	if err := scanExpense(r.q.QueryRow(ctx, query, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

func scanExpense(row pgx.Row, e *entity.Expense) error {
	return row.Scan(
		&e.ID, &e.ProjectID, &e.UserID, &e.Date, &e.Description, &e.Amount, &e.Category,
		&e.Status, &e.ReceiptURL, &e.ReceiptPublicID, &e.ResolvedBy, &e.ResolvedAt,
		&e.RejectionReason, &e.CreatedAt, &e.UpdatedAt,
	)
}
