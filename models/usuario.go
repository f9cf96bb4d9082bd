package models

import "time"

// Roles ordenados: cada nivel incluye los permisos del anterior.
const (
	RolCliente    = 0
	RolAdmin      = 1
	RolSuperAdmin = 2
)

type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Email     string    `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(200);not null" json:"-"`
	Rol       int       `gorm:"not null;default:0" json:"rol"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (u *Usuario) EsAdmin() bool {
	return u.Rol >= RolAdmin
}

func (u *Usuario) EsSuperAdmin() bool {
	return u.Rol >= RolSuperAdmin
}
