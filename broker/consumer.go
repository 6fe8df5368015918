package broker

import (
	"taskboard-app/taskboard/config"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const consumerBuffer = 256

type Consumer struct {
	conn     *nats.Conn
	subs     []*nats.Subscription
	messages chan *nats.Msg
}

// InitConsumer subscribes to subjects and delivers every message on one
// channel. A non-empty group makes the subscriptions a queue group, so each
// message goes to one member of the group only.
func InitConsumer(cfg config.Config, subjects []string, group string) (*Consumer, error) {
	conn, err := connect(cfg, "taskboard-consumer")
	if err != nil {
		return nil, err
	}

	c := &Consumer{conn: conn, messages: make(chan *nats.Msg, consumerBuffer)}
	for _, subject := range subjects {
		var sub *nats.Subscription
		if group != "" {
			sub, err = conn.ChanQueueSubscribe(subject, group, c.messages)
		} else {
			sub, err = conn.ChanSubscribe(subject, c.messages)
		}
		if err != nil {
			c.Close()
			return nil, err
		}
		c.subs = append(c.subs, sub)
	}

	zap.L().Info("nats consumer subscribed", zap.Strings("subjects", subjects), zap.String("group", group))
	return c, nil
}

func (c *Consumer) GetMessageChannel() chan *nats.Msg {
	return c.messages
}

func (c *Consumer) Close() {
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			zap.L().Debug("nats unsubscribe failed", zap.String("subject", sub.Subject), zap.Error(err))
		}
	}
	c.subs = nil
	if c.conn != nil {
		c.conn.Close()
	}
}
