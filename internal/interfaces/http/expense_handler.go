package http

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/application/expense"
	"github.com/sanfelipe/obras-api/internal/domain/repository"
)

// maxReceiptSize tamaño máximo del comprobante adjunto (5 MB).
const maxReceiptSize = 5 << 20

// ExpenseHandler maneja registro, resolución y listado de gastos.
type ExpenseHandler struct {
	uc *expense.ExpenseUseCase
}

// NewExpenseHandler construye el handler de gastos.
func NewExpenseHandler(uc *expense.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

func actorFrom(c *fiber.Ctx) expense.Actor {
	return expense.Actor{
		ID:       GetUserID(c),
		Username: GetUsername(c),
		Role:     GetRole(c),
	}
}

// Create godoc
// @Summary      Registrar gasto (JSON o multipart con comprobante "receipt")
// @Tags         expenses
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  dto.ExpenseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	in, receipt, err := parseExpenseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	out, err := h.uc.Create(c.UserContext(), in, receipt, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve godoc
// @Summary      Aprobar gasto pendiente
// @Tags         expenses
// @Produce      json
// @Param        id  path  string  true  "ID del gasto"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id}/approve [put]
func (h *ExpenseHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), c.Params("id"), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar gasto pendiente (razón obligatoria)
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del gasto"
// @Param        body  body  dto.RejectExpenseRequest  true  "reason"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id}/reject [put]
func (h *ExpenseHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Reject(c.UserContext(), c.Params("id"), strings.TrimSpace(in.Reason), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar gastos visibles según rol
// @Tags         expenses
// @Produce      json
// @Param        projectId  query  string  false  "filtrar por obra"
// @Param        status     query  string  false  "PENDIENTE|APROBADO|RECHAZADO"
// @Param        startDate  query  string  false  "desde (2006-01-02)"
// @Param        endDate    query  string  false  "hasta (2006-01-02)"
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var q dto.ExpenseListRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	f := repository.ExpenseFilter{ProjectID: q.ProjectID, Status: q.Status}
	if q.StartDate != "" {
		t, err := parseDate(q.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "startDate inválido"})
		}
		f.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := parseDate(q.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "endDate inválido"})
		}
		f.EndDate = &t
	}
	out, err := h.uc.List(c.UserContext(), f, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseExpenseRequest acepta JSON puro o multipart/form-data con el comprobante
// en el campo "receipt". En multipart los campos llegan como strings y se
// parsean a mano (el schema decoder no cubre decimal ni time).
func parseExpenseRequest(c *fiber.Ctx) (dto.CreateExpenseRequest, *expense.ReceiptFile, error) {
	var in dto.CreateExpenseRequest

	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&in); err != nil {
			return in, nil, fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
		}
		return in, nil, nil
	}

	in.ProjectID = c.FormValue("projectId")
	in.Description = c.FormValue("description")
	in.Category = c.FormValue("category")
	if raw := c.FormValue("amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return in, nil, fiber.NewError(fiber.StatusBadRequest, "amount inválido")
		}
		in.Amount = amount
	}
	if raw := c.FormValue("date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return in, nil, fiber.NewError(fiber.StatusBadRequest, "date inválido")
		}
		in.Date = t
	}

	fh, err := c.FormFile("receipt")
	if err != nil {
		// Sin archivo adjunto: gasto sin comprobante.
		return in, nil, nil
	}
	if fh.Size > maxReceiptSize {
		return in, nil, fiber.NewError(fiber.StatusBadRequest, "el comprobante supera los 5 MB")
	}
	if !validReceiptExt(fh.Filename) {
		return in, nil, fiber.NewError(fiber.StatusBadRequest, "formato de comprobante no soportado (jpg, jpeg, png, webp)")
	}

	file, err := fh.Open()
	if err != nil {
		return in, nil, fiber.NewError(fiber.StatusBadRequest, "no se pudo leer el comprobante")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return in, nil, fiber.NewError(fiber.StatusBadRequest, "no se pudo leer el comprobante")
	}
	return in, &expense.ReceiptFile{Data: data, Filename: fh.Filename}, nil
}

func validReceiptExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// parseDate acepta RFC 3339 o el formato corto 2006-01-02.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
