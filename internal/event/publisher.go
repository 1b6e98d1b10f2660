package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Типы доменных событий (используются как routing key)
const (
	TypeCertificateIssued = "certificate.issued"
)

// CertificateIssued публикуется после сохранения сертификата
type CertificateIssued struct {
	CertificateID string    `json:"certificate_id"`
	UserID        string    `json:"user_id"`
	CourseID      string    `json:"course_id"`
	Score         int       `json:"score"`
	IssuedAt      time.Time `json:"issued_at"`
}

// Publisher публикует доменные события
type Publisher interface {
	PublishCertificateIssued(ctx context.Context, evt CertificateIssued) error
	Close() error
}

// RabbitPublisher публикует события в topic exchange RabbitMQ
type RabbitPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	mu       sync.Mutex // amqp091.Channel не потокобезопасен для Publish
}

// NewRabbitPublisher подключается к RabbitMQ и объявляет exchange
func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info().Str("exchange", exchange).Msg("[EventPublisher] Инициализирован")
	return &RabbitPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// PublishCertificateIssued публикует событие выдачи сертификата
func (p *RabbitPublisher) PublishCertificateIssued(ctx context.Context, evt CertificateIssued) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,            // exchange
		TypeCertificateIssued, // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			MessageId:    evt.CertificateID,
			Body:         body,
			Headers: amqp091.Table{
				"event_type": TypeCertificateIssued,
				"user_id":    evt.UserID,
				"course_id":  evt.CourseID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close закрывает канал и соединение
func (p *RabbitPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Warn().Err(err).Msg("[EventPublisher] Ошибка закрытия канала")
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher используется, когда RabbitMQ отключен
type NoopPublisher struct{}

// PublishCertificateIssued ничего не делает
func (NoopPublisher) PublishCertificateIssued(context.Context, CertificateIssued) error { return nil }

// Close ничего не делает
func (NoopPublisher) Close() error { return nil }
