package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanfelipe/obras-api/internal/domain/entity"
)

func TestRole_Predicados(t *testing.T) {
	assert.True(t, entity.RoleModerador.CanViewAll())
	assert.True(t, entity.RoleContabilidad.CanViewAll())
	assert.False(t, entity.RoleAdminObra.CanViewAll())
	assert.False(t, entity.RoleTrabajador.CanViewAll())

	assert.True(t, entity.RoleModerador.CanApprove())
	assert.True(t, entity.RoleAdminObra.CanApprove())
	assert.False(t, entity.RoleContabilidad.CanApprove())
	assert.False(t, entity.RoleTrabajador.CanApprove())

	assert.True(t, entity.RoleModerador.CanRegisterUsers())
	assert.True(t, entity.RoleAdminObra.CanRegisterUsers())
	assert.False(t, entity.RoleTrabajador.CanRegisterUsers())
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range []entity.Role{
		entity.RoleModerador, entity.RoleAdminObra, entity.RoleTrabajador, entity.RoleContabilidad,
	} {
		assert.True(t, r.IsValid(), "rol %s debe ser válido", r)
	}
	assert.False(t, entity.Role("GERENTE").IsValid())
	assert.False(t, entity.Role("").IsValid())
}

func TestExpense_CanResolve(t *testing.T) {
	e := &entity.Expense{Status: entity.ExpenseStatusPendiente}
	assert.True(t, e.CanResolve())

	e.Status = entity.ExpenseStatusAprobado
	assert.False(t, e.CanResolve())

	e.Status = entity.ExpenseStatusRechazado
	assert.False(t, e.CanResolve())
}
