package entity

import "time"

// ProjectAssignment vincula un usuario a una obra con un rol de obra.
// A lo sumo una asignación activa por par (obra, usuario); la desasignación
// pone IsActive=false y registra RemovedAt, nunca borra la fila.
type ProjectAssignment struct {
	ID            string
	ProjectID     string
	UserID        string
	RoleInProject ProjectRole
	AssignedBy    string
	AssignedAt    time.Time
	RemovedAt     *time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
