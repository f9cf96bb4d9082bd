// Package events publica los eventos de dominio del motor de reservas.
// El despacho es síncrono y en proceso; los suscriptores (log, AMQP) no
// participan en la transacción que originó el evento.
package events

import "sync"

// Tipos de evento de dominio.
const (
	EventReservaCreada      = "reserva.creada"
	EventReservaActualizada = "reserva.actualizada"
	EventReservaCancelada   = "reserva.cancelada"
	EventReservaEliminada   = "reserva.eliminada"
	EventMesaActualizada    = "mesa.actualizada"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Handler func(Message)

// Bus reparte cada mensaje a todos los suscriptores, en orden de registro.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Publish(msg Message) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(msg)
	}
}
