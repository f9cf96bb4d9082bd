package models

import "time"

// Estados operativos de una mesa.
const (
	MesaDisponible    = "disponible"
	MesaReservada     = "reservada"
	MesaOcupada       = "ocupada"
	MesaMantenimiento = "mantenimiento"
)

type Mesa struct {
	ID        uint      `gorm:"primaryKey" json:"id_Mesa"`
	Numero    int       `gorm:"uniqueIndex;not null" json:"numero_Mesa"`
	Capacidad int       `gorm:"not null" json:"capacidad_Mesa"`
	Estado    string    `gorm:"type:varchar(20);not null;default:'disponible'" json:"estado_Mesa"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
