// Package policy decide, sin tocar estado mutable, si una identidad
// verificada puede ejercer una capacidad. El orden de roles es numérico:
// 0=cliente, 1=admin, 2=superadmin, y cada nivel incluye al anterior.
package policy

// Capability es el nivel de permiso que exige una mutación.
type Capability int

const (
	AnyAuthenticated Capability = iota
	Admin
	SuperAdmin
)

func (c Capability) String() string {
	switch c {
	case Admin:
		return "admin"
	case SuperAdmin:
		return "superadmin"
	default:
		return "any_authenticated"
	}
}

// Identity es el contenido verificado de un token: usuario y rol.
type Identity struct {
	UserID uint
	Rol    int
}

// Allow es una función total: solo consulta el rol de la identidad.
func Allow(id Identity, cap Capability) bool {
	switch cap {
	case SuperAdmin:
		return id.Rol >= 2
	case Admin:
		return id.Rol >= 1
	default:
		return true
	}
}
