package service

import (
	"context"
	"encoding/json"
	"errors"

	"restodash/dashboard-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consumer applies change events published by any replica to this replica's cache
// and live dashboards.
type Consumer struct {
	Reader MessageReader
	Query  QueryServiceInterface
	Hub    Broadcaster
	log    logrus.FieldLogger
}

func NewConsumer(reader MessageReader, query QueryServiceInterface, hub Broadcaster, log logrus.FieldLogger) *Consumer {
	return &Consumer{
		Reader: reader,
		Query:  query,
		Hub:    hub,
		log:    log.WithField("component", "consumer"),
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.log.Info("starting change event consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.log.Info("change event consumer stopped")
				return
			}
			c.log.WithError(err).Warn("error reading message")
			continue
		}

		var event domain.ChangeEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.log.WithError(err).Warn("error unmarshaling message")
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

// ProcessEvent is idempotent: invalidating an already empty prefix is a no-op.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.ChangeEvent) {
	switch event.Type {
	case domain.EventCreated, domain.EventUpdated, domain.EventDeleted:
	default:
		c.log.WithField("type", event.Type).Debug("ignoring event")
		return
	}

	c.Query.Invalidate(ctx, event.Prefixes...)
	c.Hub.BroadcastToOrganization(event.OrganizationID, event)

	c.log.WithFields(logrus.Fields{
		"organization_id": event.OrganizationID,
		"resource":        event.Resource,
		"resource_id":     event.ResourceID,
	}).Debug("processed change event")
}

var _ ConsumerInterface = (*Consumer)(nil)
