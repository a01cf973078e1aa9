package entity

import (
	"fmt"
	"time"
)

// Tipos de notificación.
const (
	NotifGastoRegistrado         = "GASTO_REGISTRADO"
	NotifGastoAprobado           = "GASTO_APROBADO"
	NotifGastoRechazado          = "GASTO_RECHAZADO"
	NotifAsignacionObra          = "ASIGNACION_OBRA"
	NotifAsignacionAdministrador = "ASIGNACION_ADMINISTRADOR"
	NotifPresupuestoExcedido     = "PRESUPUESTO_EXCEDIDO"
	NotifObraCreada              = "OBRA_CREADA"
	NotifInfo                    = "INFO"
)

// Notification registro append-only dirigido a un usuario. Solo muta el flag de lectura.
type Notification struct {
	ID             string
	UserID         string
	Type           string
	Title          string
	Message        string
	RelatedExpense string // opcional
	RelatedProject string // opcional
	IsRead         bool
	CreatedAt      time.Time
}

// RelativeAge texto de antigüedad ("Hace 2 horas") respecto de now.
// Derivación de presentación; vive aquí porque el cliente la consume junto a la entidad.
func (n *Notification) RelativeAge(now time.Time) string {
	diff := now.Sub(n.CreatedAt)
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "Hace un momento"
	case minutes < 60:
		return fmt.Sprintf("Hace %d %s", minutes, plural(minutes, "minuto", "minutos"))
	case hours < 24:
		return fmt.Sprintf("Hace %d %s", hours, plural(hours, "hora", "horas"))
	default:
		return fmt.Sprintf("Hace %d %s", days, plural(days, "día", "días"))
	}
}

func plural(n int, singular, pl string) string {
	if n == 1 {
		return singular
	}
	return pl
}
