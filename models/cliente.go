package models

import "time"

// Cliente es el contacto de una reserva, no una identidad autenticada.
// Se crea la primera vez que un email reserva y se reutiliza después
// (como máximo una fila por email).
type Cliente struct {
	ID        uint      `gorm:"primaryKey" json:"id_Cliente"`
	Nombre    string    `gorm:"type:varchar(100);not null" json:"nombre_Cliente"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email_Cliente"`
	Telefono  string    `gorm:"type:varchar(20);not null" json:"telefono_Cliente"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
