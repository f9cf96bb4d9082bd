package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/events"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

// MesaService es la máquina de estados de una mesa física. El estado
// "reservada" solo lo pone y lo quita el motor de reservas; el resto de
// transiciones son acciones administrativas explícitas.
type MesaService struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewMesaService(db *gorm.DB, bus *events.Bus) *MesaService {
	return &MesaService{DB: db, Bus: bus}
}

// MesaAceptaReservas refleja la regla "no fuera de servicio": una mesa
// ocupada o en mantenimiento rechaza reservas nuevas.
func MesaAceptaReservas(estado string) bool {
	return estado == models.MesaDisponible || estado == models.MesaReservada
}

// estadosAdmin son los destinos que admite el panel de administración.
// "reservada" queda fuera a propósito: lo gestiona el motor de reservas.
var estadosAdmin = map[string]bool{
	models.MesaDisponible:    true,
	models.MesaOcupada:       true,
	models.MesaMantenimiento: true,
}

// CrearMesa da de alta una mesa nueva en estado disponible.
func (s *MesaService) CrearMesa(numero, capacidad int) (*models.Mesa, error) {
	if numero <= 0 || capacidad <= 0 {
		return nil, utils.NewValidationError("Número y capacidad deben ser mayores que cero")
	}

	var existente models.Mesa
	err := s.DB.Where("numero = ?", numero).First(&existente).Error
	if err == nil {
		return nil, utils.NewConflictError(fmt.Sprintf("Ya existe la mesa número %d", numero))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewInternalError(err)
	}

	mesa := models.Mesa{
		Numero:    numero,
		Capacidad: capacidad,
		Estado:    models.MesaDisponible,
	}
	if err := s.DB.Create(&mesa).Error; err != nil {
		return nil, utils.NewInternalError(err)
	}
	return &mesa, nil
}

// CambiarEstado aplica una transición administrativa (ocupar la mesa por un
// walk-in, sacarla a mantenimiento o devolverla a disponible). No cancela en
// cascada las reservas existentes; ese es el comportamiento documentado.
func (s *MesaService) CambiarEstado(mesaID uint, estado string) (*models.Mesa, error) {
	if !estadosAdmin[estado] {
		return nil, utils.NewValidationError("Estado no válido")
	}

	var mesa models.Mesa
	if err := s.DB.First(&mesa, mesaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Mesa no encontrada")
		}
		return nil, utils.NewInternalError(err)
	}

	mesa.Estado = estado
	if err := s.DB.Save(&mesa).Error; err != nil {
		return nil, utils.NewInternalError(err)
	}

	if s.Bus != nil {
		s.Bus.Publish(events.Message{Event: events.EventMesaActualizada, Data: mesa})
	}
	return &mesa, nil
}

// Listar devuelve todas las mesas ordenadas por número.
func (s *MesaService) Listar() ([]models.Mesa, error) {
	var mesas []models.Mesa
	if err := s.DB.Order("numero ASC").Find(&mesas).Error; err != nil {
		return nil, utils.NewInternalError(err)
	}
	return mesas, nil
}

// bloquearMesa carga la fila de la mesa con FOR UPDATE para serializar las
// reservas concurrentes sobre la misma mesa. En sqlite se omite la cláusula:
// su único escritor ya serializa las transacciones.
func bloquearMesa(tx *gorm.DB, mesaID uint) (*models.Mesa, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var mesa models.Mesa
	if err := q.First(&mesa, mesaID).Error; err != nil {
		return nil, err
	}
	return &mesa, nil
}

// LiberarSiSinActivas devuelve la mesa a disponible cuando ya no le queda
// ninguna reserva activa (pendiente o confirmada). Corre dentro de la misma
// transacción que el cambio de estado de la reserva para que mesa y reserva
// nunca queden incoherentes. No toca mesas en ocupada o mantenimiento.
func (s *MesaService) LiberarSiSinActivas(tx *gorm.DB, mesaID uint) error {
	mesa, err := bloquearMesa(tx, mesaID)
	if err != nil {
		return err
	}
	if mesa.Estado != models.MesaReservada {
		return nil
	}

	var activas int64
	err = tx.Model(&models.Reserva{}).
		Where("mesa_id = ? AND estado IN ?", mesaID, []string{models.ReservaPendiente, models.ReservaConfirmada}).
		Count(&activas).Error
	if err != nil {
		return err
	}
	if activas > 0 {
		return nil
	}

	return tx.Model(mesa).Update("estado", models.MesaDisponible).Error
}
