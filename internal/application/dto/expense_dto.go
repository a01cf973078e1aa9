package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto. El comprobante llega
// aparte como archivo multipart ("receipt"), no en el cuerpo JSON.
type CreateExpenseRequest struct {
	ProjectID   string          `json:"projectId" form:"projectId"`
	Date        time.Time       `json:"date" form:"date"`
	Description string          `json:"description" form:"description"`
	Amount      decimal.Decimal `json:"amount" form:"amount"`
	Category    string          `json:"category" form:"category"`
}

// RejectExpenseRequest entrada para rechazar: la razón es obligatoria.
type RejectExpenseRequest struct {
	Reason string `json:"reason"`
}

// ExpenseResponse salida de un gasto. Los campos approvedBy/approvedAt conservan
// el nombre que espera el cliente móvil aunque internamente sean resolvedBy/resolvedAt
// (un único par de resolución para ambos desenlaces).
type ExpenseResponse struct {
	ID              string          `json:"id"`
	ProjectID       string          `json:"projectId"`
	UserID          string          `json:"userId"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Status          string          `json:"status"`
	ReceiptURL      string          `json:"receiptUrl,omitempty"`
	ResolvedBy      string          `json:"approvedBy,omitempty"`
	ResolvedAt      *time.Time      `json:"approvedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ExpenseListRequest filtros del listado (query params).
type ExpenseListRequest struct {
	ProjectID string `query:"projectId"`
	Status    string `query:"status"`
	StartDate string `query:"startDate"` // RFC 3339 o 2006-01-02
	EndDate   string `query:"endDate"`
}
