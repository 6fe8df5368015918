package broker

import (
	"errors"
	"time"

	"taskboard-app/taskboard/config"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var ErrNotConnected = errors.New("broker is not connected")

// Publisher is what the event dispatcher needs from a broker
type Publisher interface {
	Publish(subject string, data []byte) error
	Close()
}

type Producer struct {
	conn *nats.Conn
}

func connect(cfg config.Config, name string) (*nats.Conn, error) {
	return nats.Connect(cfg.NATSURL,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				zap.L().Warn("nats disconnected", zap.String("client", name), zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			zap.L().Info("nats reconnected", zap.String("client", name), zap.String("url", nc.ConnectedUrl()))
		}),
	)
}

func InitProducer(cfg config.Config) (*Producer, error) {
	conn, err := connect(cfg, "taskboard-producer")
	if err != nil {
		return nil, err
	}
	zap.L().Info("nats producer connected", zap.String("url", cfg.NATSURL))
	return &Producer{conn: conn}, nil
}

func (p *Producer) Publish(subject string, data []byte) error {
	if p == nil || p.conn == nil {
		return ErrNotConnected
	}
	return p.conn.Publish(subject, data)
}

// Close flushes pending publishes before closing the connection
func (p *Producer) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		zap.L().Warn("nats producer drain failed", zap.Error(err))
		p.conn.Close()
	}
}
