package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/services"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

type ReservaController struct {
	Reservas *services.ReservaService
}

func NewReservaController(reservas *services.ReservaService) *ReservaController {
	return &ReservaController{Reservas: reservas}
}

// CrearReserva -> alta pública de una reserva; el motor valida capacidad,
// estado de la mesa y conflicto de slot.
func (rc *ReservaController) CrearReserva(c *gin.Context) {
	var req struct {
		NombreCliente   string `json:"nombre_cliente"`
		EmailCliente    string `json:"email_cliente"`
		TelefonoCliente string `json:"telefono_cliente"`
		MesaID          uint   `json:"id_Mesa"`
		Fecha           string `json:"fecha_Reserva"`
		Hora            string `json:"hora_Reserva"`
		NumPersonas     int    `json:"num_Personas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	conf, err := rc.Reservas.CrearReserva(services.CrearReservaInput{
		NombreCliente:   req.NombreCliente,
		EmailCliente:    req.EmailCliente,
		TelefonoCliente: req.TelefonoCliente,
		MesaID:          req.MesaID,
		Fecha:           req.Fecha,
		Hora:            req.Hora,
		NumPersonas:     req.NumPersonas,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reserva %d creada: mesa %d, %s %s",
		conf.Reserva.ID, conf.NumeroMesa, conf.Reserva.Fecha, conf.Reserva.Hora)
	utils.RespondJSON(c, http.StatusCreated, "Reserva creada con éxito", gin.H{
		"id_Reserva":    conf.Reserva.ID,
		"numero_Mesa":   conf.NumeroMesa,
		"fecha_Reserva": conf.Reserva.Fecha,
		"hora_Reserva":  conf.Reserva.Hora,
	})
}

// GetReservas -> listado desnormalizado; con ?email= filtra por cliente.
func (rc *ReservaController) GetReservas(c *gin.Context) {
	detalles, err := rc.Reservas.Listar(c.Query("email"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservas obtenidas exitosamente", gin.H{
		"reservas": detalles,
	})
}

// ActualizarReserva -> cambio de estado o comentarios (solo admin).
func (rc *ReservaController) ActualizarReserva(c *gin.Context) {
	reservaID, err := strconv.Atoi(c.Param("reserva_id"))
	if err != nil {
		utils.RespondAppError(c, utils.NewNotFoundError("Reserva no encontrada"))
		return
	}

	var req struct {
		Estado      *string `json:"estado"`
		Comentarios *string `json:"comentarios"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reserva, err := rc.Reservas.ActualizarEstado(uint(reservaID), services.ActualizarReservaInput{
		Estado:      req.Estado,
		Comentarios: req.Comentarios,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reserva %d actualizada a %s", reserva.ID, reserva.Estado)
	utils.RespondJSON(c, http.StatusOK, "Reserva actualizada exitosamente", gin.H{
		"reserva": reserva,
	})
}

// EliminarReserva -> borrado administrativo con liberación de la mesa.
func (rc *ReservaController) EliminarReserva(c *gin.Context) {
	reservaID, err := strconv.Atoi(c.Param("reserva_id"))
	if err != nil {
		utils.RespondAppError(c, utils.NewNotFoundError("Reserva no encontrada"))
		return
	}

	if err := rc.Reservas.Eliminar(uint(reservaID)); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reserva %d eliminada", reservaID)
	utils.RespondJSON(c, http.StatusOK, "Reserva eliminada exitosamente", nil)
}
