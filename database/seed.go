package database

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/utils"
)

// mesasIniciales es el juego fijo de mesas del restaurante. Solo se crean
// las que falten; nunca se tocan las existentes.
var mesasIniciales = []models.Mesa{
	{Numero: 1, Capacidad: 4},
	{Numero: 2, Capacidad: 2},
	{Numero: 3, Capacidad: 6},
	{Numero: 4, Capacidad: 4},
	{Numero: 5, Capacidad: 8},
}

// Seed garantiza el superadmin por defecto y el juego inicial de mesas.
func Seed(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedMesas(db)
}

func seedAdmin(db *gorm.DB) error {
	var admin models.Usuario
	err := db.Where("email = ?", "admin@restaurant.com").First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin = models.Usuario{
		Nombre:   "Administrador",
		Email:    "admin@restaurant.com",
		Password: string(hashed),
		Rol:      models.RolSuperAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Usuario admin creado: %s", admin.Email)
	return nil
}

func seedMesas(db *gorm.DB) error {
	for _, mesa := range mesasIniciales {
		var existente models.Mesa
		err := db.Where("numero = ?", mesa.Numero).First(&existente).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		mesa.Estado = models.MesaDisponible
		if err := db.Create(&mesa).Error; err != nil {
			return err
		}
	}
	return nil
}
