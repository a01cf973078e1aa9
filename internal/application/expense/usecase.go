package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/application/ports"
	"github.com/sanfelipe/obras-api/internal/domain"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/internal/domain/repository"
)

// Actor identidad autenticada que ejecuta la operación (extraída del token).
// Se pasa explícita en cada operación, nunca como estado ambiente.
type Actor struct {
	ID       string
	Username string
	Role     entity.Role
}

// ReceiptFile comprobante adjunto al registrar un gasto.
type ReceiptFile struct {
	Data     []byte
	Filename string
}

// montoPrinter formatea montos en es-PE ("S/ 1,500.00") para los mensajes
// de notificación.
var montoPrinter = message.NewPrinter(language.MustParse("es-PE"))

func formatMonto(d decimal.Decimal) string {
	return montoPrinter.Sprintf("S/ %.2f", d.InexactFloat64())
}

// ExpenseUseCase casos de uso del libro de gastos: registro, aprobación,
// rechazo y listado según rol. La máquina de estados es
// PENDIENTE -> APROBADO | RECHAZADO, ambos terminales.
type ExpenseUseCase struct {
	txRunner       TxRunner
	expenseRepo    repository.ExpenseRepository
	projectRepo    repository.ProjectRepository
	assignmentRepo repository.AssignmentRepository
	uploader       ports.ImageUploader
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(
	txRunner TxRunner,
	expenseRepo repository.ExpenseRepository,
	projectRepo repository.ProjectRepository,
	assignmentRepo repository.AssignmentRepository,
	uploader ports.ImageUploader,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txRunner:       txRunner,
		expenseRepo:    expenseRepo,
		projectRepo:    projectRepo,
		assignmentRepo: assignmentRepo,
		uploader:       uploader,
	}
}

// Create registra un gasto en estado PENDIENTE. El actor debe tener asignación
// activa en la obra o ser MODERADOR. Si hay comprobante se sube al servicio de
// imágenes ANTES de persistir: si la subida falla, el gasto no se crea
// (ErrUpload). Al persistir se notifica a cada ADMINISTRADOR activo de la obra
// dentro de la misma transacción.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.CreateExpenseRequest, receipt *ReceiptFile, actor Actor) (*dto.ExpenseResponse, error) {
	if in.ProjectID == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}

	project, err := uc.projectRepo.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	if actor.Role != entity.RoleModerador {
		assignment, err := uc.assignmentRepo.GetActive(ctx, in.ProjectID, actor.ID)
		if err != nil {
			return nil, err
		}
		if assignment == nil {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	e := &entity.Expense{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		UserID:      actor.ID,
		Date:        date,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Status:      entity.ExpenseStatusPendiente,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if receipt != nil {
		uploaded, err := uc.uploader.Upload(ctx, receipt.Data, receipt.Filename, "receipts")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpload, err)
		}
		e.ReceiptURL = uploaded.URL
		e.ReceiptPublicID = uploaded.PublicID
	}

	// Administradores activos de la obra, para el fan-out de notificaciones.
	admins, err := uc.assignmentRepo.ListActiveAdmins(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(
		expenseRepo repository.ExpenseRepository,
		_ repository.ProjectRepository,
		notifRepo repository.NotificationRepository,
	) error {
		if err := expenseRepo.Create(ctx, e); err != nil {
			return err
		}
		for _, admin := range admins {
			n := &entity.Notification{
				ID:             uuid.New().String(),
				UserID:         admin.UserID,
				Type:           entity.NotifGastoRegistrado,
				Title:          "Nuevo gasto registrado",
				Message:        fmt.Sprintf("%s registró un gasto de %s", actor.Username, formatMonto(e.Amount)),
				RelatedExpense: e.ID,
				RelatedProject: e.ProjectID,
				CreatedAt:      now,
			}
			if err := notifRepo.Create(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ToExpenseResponse(e), nil
}

// Approve aprueba un gasto PENDIENTE. El actor debe ser MODERADOR o
// ADMINISTRADOR activo de la obra del gasto. En una única transacción:
// bloquea la fila del gasto, fija status/resolución, incrementa
// current_spent de la obra de forma atómica y notifica al registrador.
func (uc *ExpenseUseCase) Approve(ctx context.Context, expenseID string, actor Actor) (*dto.ExpenseResponse, error) {
	if err := uc.authorizeResolution(ctx, expenseID, actor); err != nil {
		return nil, err
	}

	var resolved *entity.Expense
	err := uc.txRunner.Run(ctx, func(
		expenseRepo repository.ExpenseRepository,
		projectRepo repository.ProjectRepository,
		notifRepo repository.NotificationRepository,
	) error {
		e, err := expenseRepo.GetByIDForUpdate(ctx, expenseID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
		if !e.CanResolve() {
			return domain.ErrInvalidState
		}

		now := time.Now()
		e.Status = entity.ExpenseStatusAprobado
		e.ResolvedBy = actor.ID
		e.ResolvedAt = &now
		e.UpdatedAt = now
		if err := expenseRepo.Resolve(ctx, e); err != nil {
			return err
		}
		if err := projectRepo.IncrementSpent(ctx, e.ProjectID, e.Amount); err != nil {
			return err
		}

		n := &entity.Notification{
			ID:             uuid.New().String(),
			UserID:         e.UserID,
			Type:           entity.NotifGastoAprobado,
			Title:          "Gasto aprobado",
			Message:        fmt.Sprintf("Tu gasto de %s fue aprobado", formatMonto(e.Amount)),
			RelatedExpense: e.ID,
			RelatedProject: e.ProjectID,
			CreatedAt:      now,
		}
		if err := notifRepo.Create(ctx, n); err != nil {
			return err
		}
		resolved = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToExpenseResponse(resolved), nil
}

// Reject rechaza un gasto PENDIENTE. La razón es obligatoria (ErrInvalidInput
// sin ningún efecto si falta). Mismos permisos que Approve; no toca el
// presupuesto de la obra.
func (uc *ExpenseUseCase) Reject(ctx context.Context, expenseID, reason string, actor Actor) (*dto.ExpenseResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.authorizeResolution(ctx, expenseID, actor); err != nil {
		return nil, err
	}

	var resolved *entity.Expense
	err := uc.txRunner.Run(ctx, func(
		expenseRepo repository.ExpenseRepository,
		_ repository.ProjectRepository,
		notifRepo repository.NotificationRepository,
	) error {
		e, err := expenseRepo.GetByIDForUpdate(ctx, expenseID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
		if !e.CanResolve() {
			return domain.ErrInvalidState
		}

		now := time.Now()
		e.Status = entity.ExpenseStatusRechazado
		e.RejectionReason = reason
		e.ResolvedBy = actor.ID
		e.ResolvedAt = &now
		e.UpdatedAt = now
		if err := expenseRepo.Resolve(ctx, e); err != nil {
			return err
		}

		n := &entity.Notification{
			ID:             uuid.New().String(),
			UserID:         e.UserID,
			Type:           entity.NotifGastoRechazado,
			Title:          "Gasto rechazado",
			Message:        fmt.Sprintf("Tu gasto de %s fue rechazado: %s", formatMonto(e.Amount), reason),
			RelatedExpense: e.ID,
			RelatedProject: e.ProjectID,
			CreatedAt:      now,
		}
		if err := notifRepo.Create(ctx, n); err != nil {
			return err
		}
		resolved = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToExpenseResponse(resolved), nil
}

// List gastos visibles para el actor, más recientes primero.
// MODERADOR/CONTABILIDAD ven todos; ADMIN_OBRA los de las obras donde es
// ADMINISTRADOR activo; el resto solo los propios.
func (uc *ExpenseUseCase) List(ctx context.Context, f repository.ExpenseFilter, actor Actor) ([]dto.ExpenseResponse, error) {
	switch {
	case actor.Role.CanViewAll():
		// sin restricción adicional
	case actor.Role == entity.RoleAdminObra:
		ids, err := uc.assignmentRepo.ListProjectIDsByUser(ctx, actor.ID, entity.ProjectRoleAdministrador)
		if err != nil {
			return nil, err
		}
		if f.ProjectID != "" {
			// El filtro pedido debe pertenecer a sus obras; si no, no ve nada.
			if !contains(ids, f.ProjectID) {
				return []dto.ExpenseResponse{}, nil
			}
		} else {
			if len(ids) == 0 {
				return []dto.ExpenseResponse{}, nil
			}
			f.ProjectIDs = ids
		}
	default:
		f.UserID = actor.ID
	}

	expenses, err := uc.expenseRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, *ToExpenseResponse(e))
	}
	return out, nil
}

// authorizeResolution valida existencia del gasto y permisos del actor para
// aprobar/rechazar. La comprobación de estado definitiva ocurre dentro de la
// transacción, con la fila bloqueada.
func (uc *ExpenseUseCase) authorizeResolution(ctx context.Context, expenseID string, actor Actor) error {
	e, err := uc.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if !e.CanResolve() {
		return domain.ErrInvalidState
	}
	if !actor.Role.CanApprove() {
		return domain.ErrForbidden
	}
	if actor.Role == entity.RoleModerador {
		return nil
	}
	a, err := uc.assignmentRepo.GetActive(ctx, e.ProjectID, actor.ID)
	if err != nil {
		return err
	}
	if a == nil || a.RoleInProject != entity.ProjectRoleAdministrador {
		return domain.ErrForbidden
	}
	return nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// ToExpenseResponse mapea la entidad al DTO de salida.
func ToExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:              e.ID,
		ProjectID:       e.ProjectID,
		UserID:          e.UserID,
		Date:            e.Date,
		Description:     e.Description,
		Amount:          e.Amount,
		Category:        e.Category,
		Status:          e.Status,
		ReceiptURL:      e.ReceiptURL,
		ResolvedBy:      e.ResolvedBy,
		ResolvedAt:      e.ResolvedAt,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
	}
}
