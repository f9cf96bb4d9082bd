package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/events"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

// ReservaService valida y confirma reservas nuevas y aplica las transiciones
// de su ciclo de vida. Toda mutación de Reserva pasa por aquí; los efectos
// sobre el estado de la mesa se delegan en MesaService dentro de la misma
// transacción.
type ReservaService struct {
	DB    *gorm.DB
	Mesas *MesaService
	Bus   *events.Bus
}

func NewReservaService(db *gorm.DB, mesas *MesaService, bus *events.Bus) *ReservaService {
	return &ReservaService{DB: db, Mesas: mesas, Bus: bus}
}

type CrearReservaInput struct {
	NombreCliente   string
	EmailCliente    string
	TelefonoCliente string
	MesaID          uint
	Fecha           string
	Hora            string
	NumPersonas     int
}

// Confirmacion es la respuesta de una reserva creada, con el número de mesa
// desnormalizado para mostrarlo al cliente.
type Confirmacion struct {
	Reserva    *models.Reserva
	NumeroMesa int
}

// normalizarFecha exige fecha de calendario YYYY-MM-DD.
func normalizarFecha(fecha string) (string, error) {
	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// normalizarHora exige hora de 24h con resolución de minuto. Se aceptan
// segundos en la entrada pero se descartan al comparar slots.
func normalizarHora(hora string) (string, error) {
	if t, err := time.Parse("15:04", hora); err == nil {
		return t.Format("15:04"), nil
	}
	t, err := time.Parse("15:04:05", hora)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}

// CrearReserva ejecuta la secuencia completa de alta: validación de campos,
// capacidad, estado de la mesa, conflicto de slot, resolución del cliente e
// inserción. La comprobación de conflicto y la inserción corren en una única
// transacción con la fila de la mesa bloqueada, de modo que dos peticiones
// concurrentes por el mismo slot nunca se confirman las dos.
func (s *ReservaService) CrearReserva(in CrearReservaInput) (*Confirmacion, error) {
	if in.NombreCliente == "" || in.EmailCliente == "" || in.TelefonoCliente == "" ||
		in.MesaID == 0 || in.Fecha == "" || in.Hora == "" || in.NumPersonas == 0 {
		return nil, utils.NewValidationError("Faltan datos")
	}

	fecha, err := normalizarFecha(in.Fecha)
	if err != nil {
		return nil, utils.NewValidationError("Fecha u hora inválida")
	}
	hora, err := normalizarHora(in.Hora)
	if err != nil {
		return nil, utils.NewValidationError("Fecha u hora inválida")
	}

	var conf *Confirmacion
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		mesa, err := bloquearMesa(tx, in.MesaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// La referencia responde 400, no 404, cuando la mesa no existe
				return utils.NewValidationError("Mesa no encontrada")
			}
			return utils.NewInternalError(err)
		}

		if in.NumPersonas > mesa.Capacidad {
			return utils.NewValidationError(
				fmt.Sprintf("La mesa solo tiene capacidad para %d personas", mesa.Capacidad))
		}

		if !MesaAceptaReservas(mesa.Estado) {
			return utils.NewValidationError("La mesa no está disponible")
		}

		// Bloquea el slot cualquier reserva no cancelada
		var ocupadas int64
		err = tx.Model(&models.Reserva{}).
			Where("mesa_id = ? AND fecha = ? AND hora = ? AND estado <> ?",
				in.MesaID, fecha, hora, models.ReservaCancelada).
			Count(&ocupadas).Error
		if err != nil {
			return utils.NewInternalError(err)
		}
		if ocupadas > 0 {
			return utils.NewConflictError("La mesa ya está reservada para esa fecha y hora")
		}

		cliente, err := ResolverCliente(tx, in.NombreCliente, in.EmailCliente, in.TelefonoCliente)
		if err != nil {
			return utils.NewInternalError(err)
		}

		reserva := models.Reserva{
			ClienteID:   cliente.ID,
			MesaID:      mesa.ID,
			Fecha:       fecha,
			Hora:        hora,
			NumPersonas: in.NumPersonas,
			Estado:      models.ReservaPendiente,
		}
		if err := tx.Create(&reserva).Error; err != nil {
			return utils.NewInternalError(err)
		}

		if mesa.Estado == models.MesaDisponible {
			if err := tx.Model(mesa).Update("estado", models.MesaReservada).Error; err != nil {
				return utils.NewInternalError(err)
			}
		}

		conf = &Confirmacion{Reserva: &reserva, NumeroMesa: mesa.Numero}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publicar(events.EventReservaCreada, conf.Reserva)
	return conf, nil
}

// ReservaDetalle es la vista desnormalizada para los listados.
type ReservaDetalle struct {
	ID          uint   `json:"id_Reserva"`
	MesaID      uint   `json:"id_Mesa"`
	Nombre      string `json:"nombre_Cliente"`
	Email       string `json:"email_Cliente"`
	Telefono    string `json:"telefono_Cliente"`
	NumeroMesa  int    `json:"numero_Mesa"`
	Fecha       string `json:"fecha_Reserva"`
	Hora        string `json:"hora_Reserva"`
	NumPersonas int    `json:"num_Personas"`
	Estado      string `json:"estado_Reserva"`
	Comentarios string `json:"comentarios,omitempty"`
}

func detalle(r models.Reserva) ReservaDetalle {
	return ReservaDetalle{
		ID:          r.ID,
		MesaID:      r.MesaID,
		Nombre:      r.Cliente.Nombre,
		Email:       r.Cliente.Email,
		Telefono:    r.Cliente.Telefono,
		NumeroMesa:  r.Mesa.Numero,
		Fecha:       r.Fecha,
		Hora:        r.Hora,
		NumPersonas: r.NumPersonas,
		Estado:      r.Estado,
		Comentarios: r.Comentarios,
	}
}

// Listar devuelve las reservas, activas e inactivas, con los datos de cliente
// y mesa desnormalizados. Con email filtra por las reservas de ese cliente.
func (s *ReservaService) Listar(email string) ([]ReservaDetalle, error) {
	q := s.DB.Preload("Cliente").Preload("Mesa")
	if email != "" {
		var cliente models.Cliente
		err := s.DB.Where("email = ?", email).First(&cliente).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ReservaDetalle{}, nil
		}
		if err != nil {
			return nil, utils.NewInternalError(err)
		}
		q = q.Where("cliente_id = ?", cliente.ID)
	}

	var reservas []models.Reserva
	if err := q.Order("fecha DESC, hora DESC").Find(&reservas).Error; err != nil {
		return nil, utils.NewInternalError(err)
	}

	detalles := make([]ReservaDetalle, 0, len(reservas))
	for _, r := range reservas {
		detalles = append(detalles, detalle(r))
	}
	return detalles, nil
}

type ActualizarReservaInput struct {
	Estado      *string
	Comentarios *string
}

// ActualizarEstado aplica una transición de ciclo de vida. Pasar a cancelada
// o completada libera la mesa si no le queda otra reserva activa; reactivar
// una reserva vuelve a marcar la mesa como reservada.
func (s *ReservaService) ActualizarEstado(reservaID uint, in ActualizarReservaInput) (*models.Reserva, error) {
	var reserva models.Reserva
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reserva, reservaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("Reserva no encontrada")
			}
			return utils.NewInternalError(err)
		}

		if in.Estado != nil {
			if !models.EstadoReservaValido(*in.Estado) {
				return utils.NewValidationError("Estado no válido")
			}
			reserva.Estado = *in.Estado
		}
		if in.Comentarios != nil {
			reserva.Comentarios = *in.Comentarios
		}

		if err := tx.Save(&reserva).Error; err != nil {
			return utils.NewInternalError(err)
		}

		if reserva.EsActiva() {
			return s.marcarMesaReservada(tx, reserva.MesaID)
		}
		if err := s.Mesas.LiberarSiSinActivas(tx, reserva.MesaID); err != nil {
			return utils.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reserva.Estado == models.ReservaCancelada {
		s.publicar(events.EventReservaCancelada, &reserva)
	} else {
		s.publicar(events.EventReservaActualizada, &reserva)
	}
	return &reserva, nil
}

// Eliminar borra la reserva definitivamente con el mismo efecto de liberación
// de mesa que una cancelación.
func (s *ReservaService) Eliminar(reservaID uint) error {
	var reserva models.Reserva
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reserva, reservaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("Reserva no encontrada")
			}
			return utils.NewInternalError(err)
		}

		if err := tx.Delete(&reserva).Error; err != nil {
			return utils.NewInternalError(err)
		}

		if err := s.Mesas.LiberarSiSinActivas(tx, reserva.MesaID); err != nil {
			return utils.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publicar(events.EventReservaEliminada, &reserva)
	return nil
}

func (s *ReservaService) marcarMesaReservada(tx *gorm.DB, mesaID uint) error {
	mesa, err := bloquearMesa(tx, mesaID)
	if err != nil {
		return utils.NewInternalError(err)
	}
	if mesa.Estado != models.MesaDisponible {
		return nil
	}
	if err := tx.Model(mesa).Update("estado", models.MesaReservada).Error; err != nil {
		return utils.NewInternalError(err)
	}
	return nil
}

func (s *ReservaService) publicar(tipo string, reserva *models.Reserva) {
	if s.Bus == nil {
		return
	}
	s.Bus.Publish(events.Message{Event: tipo, Data: reserva})
}
