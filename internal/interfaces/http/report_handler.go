package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/application/usecase"
)

// ReportHandler genera el reporte PDF de gastos aprobados.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Expenses godoc
// @Summary      Reporte PDF de gastos aprobados (MODERADOR y CONTABILIDAD)
// @Tags         reports
// @Produce      application/pdf
// @Param        projectId  query  string  false  "acotar a una obra"
// @Param        startDate  query  string  false  "desde (2006-01-02)"
// @Param        endDate    query  string  false  "hasta (2006-01-02)"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/expenses [get]
func (h *ReportHandler) Expenses(c *fiber.Ctx) error {
	var startDate, endDate *time.Time
	if raw := c.Query("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "startDate inválido"})
		}
		startDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "endDate inválido"})
		}
		endDate = &t
	}

	pdfBytes, err := h.uc.ExpenseReport(c.UserContext(), c.Query("projectId"), startDate, endDate, GetRole(c))
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("reporte-gastos-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
