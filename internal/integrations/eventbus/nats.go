package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NATSConfig параметры подключения к NATS
type NATSConfig struct {
	URL           string
	SubjectPrefix string
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultNATSConfig возвращает конфигурацию по умолчанию
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "calendar.availability",
		Name:          "smc-calendar-service",
		MaxReconnects: -1, // Unlimited
		ReconnectWait: 2 * time.Second,
	}
}

// NATSPublisher публикует изменения календарей в NATS.
// Subject: <prefix>.<companyId>.<addressId>.changed
type NATSPublisher struct {
	conn   conn
	prefix string
	log    Logger
}

// NewNATSPublisher подключается к NATS
func NewNATSPublisher(cfg NATSConfig, log Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, cfg.URL, err)
	}

	log.Info("Connected to NATS at %s", nc.ConnectedUrl())
	return newNATSPublisher(nc, cfg.SubjectPrefix, log), nil
}

func newNATSPublisher(c conn, prefix string, log Logger) *NATSPublisher {
	return &NATSPublisher{conn: c, prefix: prefix, log: log}
}

// PublishAvailabilityChanged отправляет сообщение. MessageID проставляется,
// если он пустой, и служит ключом дедупликации у подписчиков.
func (p *NATSPublisher) PublishAvailabilityChanged(_ context.Context, event AvailabilityChanged) error {
	if event.MessageID == "" {
		event.MessageID = uuid.New().String()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrPublish, err)
	}

	subject := Subject(p.prefix, event.CompanyID, event.AddressID)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("%w: subject %s: %v", ErrPublish, subject, err)
	}
	return nil
}

// Close дожидается отправки буфера и закрывает соединение
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// Subject собирает subject для календаря адреса
func Subject(prefix string, companyID, addressID int64) string {
	return fmt.Sprintf("%s.%d.%d.changed", prefix, companyID, addressID)
}

// NoopPublisher используется, когда события отключены
type NoopPublisher struct{}

func (NoopPublisher) PublishAvailabilityChanged(context.Context, AvailabilityChanged) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
