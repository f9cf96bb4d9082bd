package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
)

// ResolverCliente busca el cliente por email y lo crea si no existe.
// Si ya existe se devuelve tal cual: el nombre y el teléfono de la petición
// no actualizan la ficha (deduplicación por email, no upsert).
func ResolverCliente(tx *gorm.DB, nombre, email, telefono string) (*models.Cliente, error) {
	var cliente models.Cliente
	err := tx.Where("email = ?", email).First(&cliente).Error
	if err == nil {
		return &cliente, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cliente = models.Cliente{
		Nombre:   nombre,
		Email:    email,
		Telefono: telefono,
	}
	if err := tx.Create(&cliente).Error; err != nil {
		return nil, err
	}
	return &cliente, nil
}
