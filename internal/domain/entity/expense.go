package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del gasto. PENDIENTE es el inicial; APROBADO y RECHAZADO son terminales.
const (
	ExpenseStatusPendiente = "PENDIENTE"
	ExpenseStatusAprobado  = "APROBADO"
	ExpenseStatusRechazado = "RECHAZADO"
)

// Categorías de gasto.
const (
	CategoryTransporte    = "TRANSPORTE"
	CategoryMateriales    = "MATERIALES"
	CategoryHerramientas  = "HERRAMIENTAS"
	CategoryAlimentacion  = "ALIMENTACION"
	CategoryServicios     = "SERVICIOS"
	CategoryMantenimiento = "MANTENIMIENTO"
	CategoryOtros         = "OTROS"
)

// ValidCategory indica si la categoría pertenece al conjunto cerrado.
func ValidCategory(c string) bool {
	switch c {
	case CategoryTransporte, CategoryMateriales, CategoryHerramientas,
		CategoryAlimentacion, CategoryServicios, CategoryMantenimiento, CategoryOtros:
		return true
	}
	return false
}

// Expense representa un gasto registrado contra una obra.
// ResolvedBy/ResolvedAt quedan fijados al aprobar o rechazar (un solo par de
// campos para ambos desenlaces); RejectionReason solo si RECHAZADO.
type Expense struct {
	ID              string
	ProjectID       string
	UserID          string // quien registró el gasto
	Date            time.Time
	Description     string
	Amount          decimal.Decimal // > 0
	Category        string
	Status          string
	ReceiptURL      string // vacío si no se adjuntó comprobante
	ReceiptPublicID string // ID externo del servicio de imágenes
	ResolvedBy      string
	ResolvedAt      *time.Time
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPending indica si el gasto sigue pendiente de resolución.
func (e *Expense) IsPending() bool {
	return e.Status == ExpenseStatusPendiente
}

// CanResolve indica si el gasto admite aprobar/rechazar (solo desde PENDIENTE).
func (e *Expense) CanResolve() bool {
	return e.IsPending()
}
