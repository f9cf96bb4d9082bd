package events

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "reservas"
	ExchangeKind = "topic"
)

// AMQPPublisher reenvía los eventos del bus a RabbitMQ para que otros
// servicios (notificaciones, analítica) los consuman. Es opcional: si no hay
// broker configurado el sistema funciona igual con el bus en proceso.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: ch}, nil
}

// Handle serializa el mensaje y lo publica con el tipo de evento como
// routing key. Un fallo de publicación no interrumpe la petición que
// originó el evento.
func (p *AMQPPublisher) Handle(msg Message) {
	body, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = p.channel.Publish(ExchangeName, msg.Event, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
