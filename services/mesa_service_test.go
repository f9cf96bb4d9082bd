package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/models"
)

func TestCrearMesaOK(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMesaService(db, nil)

	mesa, err := svc.CrearMesa(7, 6)
	assert.NoError(t, err)
	assert.Equal(t, 7, mesa.Numero)
	assert.Equal(t, 6, mesa.Capacidad)
	assert.Equal(t, models.MesaDisponible, mesa.Estado)
}

func TestCrearMesaDuplicada(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMesaService(db, nil)

	_, err := svc.CrearMesa(7, 6)
	assert.NoError(t, err)

	_, err = svc.CrearMesa(7, 2)
	assert.EqualError(t, err, "Ya existe la mesa número 7")
}

func TestCrearMesaDatosInvalidos(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMesaService(db, nil)

	_, err := svc.CrearMesa(0, 4)
	assert.Error(t, err)
	_, err = svc.CrearMesa(1, -2)
	assert.Error(t, err)
}

func TestCambiarEstadoAdministrativo(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMesaService(db, nil)
	mesa := crearMesa(t, db, 1, 4)

	for _, estado := range []string{models.MesaOcupada, models.MesaMantenimiento, models.MesaDisponible} {
		actualizada, err := svc.CambiarEstado(mesa.ID, estado)
		assert.NoError(t, err)
		assert.Equal(t, estado, actualizada.Estado)
	}
}

func TestCambiarEstadoRechazaReservada(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMesaService(db, nil)
	mesa := crearMesa(t, db, 1, 4)

	// "reservada" solo lo pone el motor de reservas, no el panel
	_, err := svc.CambiarEstado(mesa.ID, models.MesaReservada)
	assert.EqualError(t, err, "Estado no válido")

	_, err = svc.CambiarEstado(mesa.ID, "rota")
	assert.EqualError(t, err, "Estado no válido")
}

func TestCambiarEstadoMesaNoEncontrada(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMesaService(db, nil)

	_, err := svc.CambiarEstado(42, models.MesaOcupada)
	assert.EqualError(t, err, "Mesa no encontrada")
}

func TestMantenimientoNoCancelaReservas(t *testing.T) {
	db := setupTestDB(t)
	mesas := NewMesaService(db, nil)
	reservas := NewReservaService(db, mesas, nil)
	mesa := crearMesa(t, db, 2, 4)

	conf, err := reservas.CrearReserva(reservaBase(mesa.ID))
	assert.NoError(t, err)

	_, err = mesas.CambiarEstado(mesa.ID, models.MesaMantenimiento)
	assert.NoError(t, err)

	// La reserva existente sobrevive al cambio; solo se rechazan altas nuevas
	var sigue models.Reserva
	assert.NoError(t, db.First(&sigue, conf.Reserva.ID).Error)
	assert.Equal(t, models.ReservaPendiente, sigue.Estado)

	in := reservaBase(mesa.ID)
	in.Hora = "21:00"
	_, err = reservas.CrearReserva(in)
	assert.EqualError(t, err, "La mesa no está disponible")
}

func TestListarMesasOrdenadas(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMesaService(db, nil)
	crearMesa(t, db, 3, 4)
	crearMesa(t, db, 1, 2)
	crearMesa(t, db, 2, 6)

	mesas, err := svc.Listar()
	assert.NoError(t, err)
	assert.Len(t, mesas, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{mesas[0].Numero, mesas[1].Numero, mesas[2].Numero})
}
