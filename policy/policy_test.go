package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowRoleOrdering(t *testing.T) {
	cliente := Identity{UserID: 1, Rol: 0}
	admin := Identity{UserID: 2, Rol: 1}
	superadmin := Identity{UserID: 3, Rol: 2}

	// Un cliente solo pasa la capacidad básica
	assert.True(t, Allow(cliente, AnyAuthenticated))
	assert.False(t, Allow(cliente, Admin))
	assert.False(t, Allow(cliente, SuperAdmin))

	// Un admin no alcanza superadmin
	assert.True(t, Allow(admin, AnyAuthenticated))
	assert.True(t, Allow(admin, Admin))
	assert.False(t, Allow(admin, SuperAdmin))

	// El superadmin pasa las tres
	assert.True(t, Allow(superadmin, AnyAuthenticated))
	assert.True(t, Allow(superadmin, Admin))
	assert.True(t, Allow(superadmin, SuperAdmin))
}

func TestAllowRolesSuperiores(t *testing.T) {
	// Roles por encima del máximo conocido siguen el orden numérico
	assert.True(t, Allow(Identity{UserID: 9, Rol: 5}, SuperAdmin))
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "any_authenticated", AnyAuthenticated.String())
	assert.Equal(t, "admin", Admin.String())
	assert.Equal(t, "superadmin", SuperAdmin.String())
}
