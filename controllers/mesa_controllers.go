package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/services"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

type MesaController struct {
	Mesas *services.MesaService
}

func NewMesaController(mesas *services.MesaService) *MesaController {
	return &MesaController{Mesas: mesas}
}

// GetAllMesas -> lista pública de mesas con su estado actual.
func (mc *MesaController) GetAllMesas(c *gin.Context) {
	mesas, err := mc.Mesas.Listar()
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Mesas obtenidas exitosamente", gin.H{
		"mesas": mesas,
	})
}

// CrearMesa -> alta administrativa de una mesa nueva.
func (mc *MesaController) CrearMesa(c *gin.Context) {
	var req struct {
		Numero    int `json:"numero_Mesa"`
		Capacidad int `json:"capacidad_Mesa"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	mesa, err := mc.Mesas.CrearMesa(req.Numero, req.Capacidad)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Mesa %d creada (capacidad=%d)", mesa.Numero, mesa.Capacidad)
	utils.RespondJSON(c, http.StatusCreated, "Mesa creada exitosamente", gin.H{
		"mesa": mesa,
	})
}

// ActualizarEstadoMesa -> transición administrativa de estado
// (disponible, ocupada, mantenimiento).
func (mc *MesaController) ActualizarEstadoMesa(c *gin.Context) {
	mesaID, err := strconv.Atoi(c.Param("mesa_id"))
	if err != nil {
		utils.RespondAppError(c, utils.NewNotFoundError("Mesa no encontrada"))
		return
	}

	var req struct {
		Estado string `json:"estado"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	mesa, err := mc.Mesas.CambiarEstado(uint(mesaID), req.Estado)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Mesa %d cambia a estado %s", mesa.ID, mesa.Estado)
	utils.RespondJSON(c, http.StatusOK, "Estado de mesa actualizado exitosamente", gin.H{
		"mesa": mesa,
	})
}
