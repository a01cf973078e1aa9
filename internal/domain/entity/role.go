package entity

// Role rol global de un usuario. Conjunto cerrado: usar IsValid antes de persistir.
type Role string

const (
	RoleModerador    Role = "MODERADOR"    // dueño/gerente, acceso total
	RoleAdminObra    Role = "ADMIN_OBRA"   // administra las obras donde está asignado
	RoleTrabajador   Role = "TRABAJADOR"   // restringido a sus propios gastos
	RoleContabilidad Role = "CONTABILIDAD" // solo lectura sobre todas las obras
)

// IsValid indica si el rol pertenece al conjunto cerrado.
func (r Role) IsValid() bool {
	switch r {
	case RoleModerador, RoleAdminObra, RoleTrabajador, RoleContabilidad:
		return true
	}
	return false
}

// CanViewAll indica si el rol ve todas las obras y gastos sin necesidad de asignación.
func (r Role) CanViewAll() bool {
	return r == RoleModerador || r == RoleContabilidad
}

// CanApprove indica si el rol puede aprobar o rechazar gastos
// (ADMIN_OBRA además requiere asignación ADMINISTRADOR activa en la obra).
func (r Role) CanApprove() bool {
	return r == RoleModerador || r == RoleAdminObra
}

// CanRegisterUsers indica si el rol puede dar de alta usuarios.
func (r Role) CanRegisterUsers() bool {
	return r == RoleModerador || r == RoleAdminObra
}

// ProjectRole rol dentro de una obra concreta, independiente del rol global.
type ProjectRole string

const (
	ProjectRoleAdministrador ProjectRole = "ADMINISTRADOR"
	ProjectRoleTrabajador    ProjectRole = "TRABAJADOR"
)

// IsValid indica si el rol de obra pertenece al conjunto cerrado.
func (r ProjectRole) IsValid() bool {
	return r == ProjectRoleAdministrador || r == ProjectRoleTrabajador
}
