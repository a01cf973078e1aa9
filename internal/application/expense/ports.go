package expense

import (
	"context"

	"github.com/sanfelipe/obras-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// La aprobación toca dos registros (gasto y obra) más la notificación: o se
// aplican todos o ninguno. Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		expenseRepo repository.ExpenseRepository,
		projectRepo repository.ProjectRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}
