package models

import "time"

// Estados del ciclo de vida de una reserva.
const (
	ReservaPendiente  = "pendiente"
	ReservaConfirmada = "confirmada"
	ReservaCancelada  = "cancelada"
	ReservaCompletada = "completada"
)

// EstadoReservaValido reporta si estado pertenece al ciclo de vida.
func EstadoReservaValido(estado string) bool {
	switch estado {
	case ReservaPendiente, ReservaConfirmada, ReservaCancelada, ReservaCompletada:
		return true
	}
	return false
}

// Reserva ocupa un slot (mesa, fecha, hora). Fecha y Hora se guardan ya
// normalizadas (YYYY-MM-DD / HH:MM, granularidad de minuto).
type Reserva struct {
	ID           uint      `gorm:"primaryKey" json:"id_Reserva"`
	ClienteID    uint      `gorm:"not null;index" json:"id_Cliente"`
	MesaID       uint      `gorm:"not null;index:idx_reservas_slot" json:"id_Mesa"`
	Fecha        string    `gorm:"type:varchar(10);not null;index:idx_reservas_slot" json:"fecha_Reserva"`
	Hora         string    `gorm:"type:varchar(5);not null;index:idx_reservas_slot" json:"hora_Reserva"`
	NumPersonas  int       `gorm:"not null" json:"num_Personas"`
	Estado       string    `gorm:"type:varchar(20);not null;default:'pendiente'" json:"estado_Reserva"`
	Comentarios  string    `gorm:"type:text" json:"comentarios,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Cliente Cliente `gorm:"foreignKey:ClienteID;references:ID" json:"-"`
	Mesa    Mesa    `gorm:"foreignKey:MesaID;references:ID" json:"-"`
}

// EsActiva reporta si la reserva mantiene la mesa en estado reservada.
func (r *Reserva) EsActiva() bool {
	return r.Estado == ReservaPendiente || r.Estado == ReservaConfirmada
}
