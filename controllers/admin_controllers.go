package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetEstadisticas -> contadores agregados para el panel de administración.
func (ac *AdminController) GetEstadisticas(c *gin.Context) {
	var totalUsuarios, usuariosActivos, admins int64
	ac.DB.Model(&models.Usuario{}).Count(&totalUsuarios)
	ac.DB.Model(&models.Usuario{}).Where("is_active = ?", true).Count(&usuariosActivos)
	ac.DB.Model(&models.Usuario{}).Where("rol >= ?", models.RolAdmin).Count(&admins)

	var totalMesas, disponibles, ocupadas, mantenimiento int64
	ac.DB.Model(&models.Mesa{}).Count(&totalMesas)
	ac.DB.Model(&models.Mesa{}).Where("estado = ?", models.MesaDisponible).Count(&disponibles)
	ac.DB.Model(&models.Mesa{}).Where("estado = ?", models.MesaOcupada).Count(&ocupadas)
	ac.DB.Model(&models.Mesa{}).Where("estado = ?", models.MesaMantenimiento).Count(&mantenimiento)

	var totalReservas, pendientes, confirmadas, hoy int64
	ac.DB.Model(&models.Reserva{}).Count(&totalReservas)
	ac.DB.Model(&models.Reserva{}).Where("estado = ?", models.ReservaPendiente).Count(&pendientes)
	ac.DB.Model(&models.Reserva{}).Where("estado = ?", models.ReservaConfirmada).Count(&confirmadas)
	ac.DB.Model(&models.Reserva{}).Where("fecha = ?", time.Now().Format("2006-01-02")).Count(&hoy)

	utils.RespondJSON(c, http.StatusOK, "Estadísticas obtenidas exitosamente", gin.H{
		"estadisticas": gin.H{
			"usuarios": gin.H{
				"total":           totalUsuarios,
				"activos":         usuariosActivos,
				"inactivos":       totalUsuarios - usuariosActivos,
				"administradores": admins,
			},
			"mesas": gin.H{
				"total":         totalMesas,
				"disponibles":   disponibles,
				"ocupadas":      ocupadas,
				"mantenimiento": mantenimiento,
			},
			"reservas": gin.H{
				"total":       totalReservas,
				"pendientes":  pendientes,
				"confirmadas": confirmadas,
				"hoy":         hoy,
			},
		},
	})
}
