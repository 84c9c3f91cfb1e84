// Package live pushes change events and chat messages to open dashboards over WebSocket.
package live

import (
	"context"

	"restodash/dashboard-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

type orgMessage struct {
	organizationID int
	data           []byte
}

// Hub owns the set of connected dashboards. Only Run touches the client set.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan orgMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	log        logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan orgMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.WithField("component", "hub"),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				client.close()
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.log.WithFields(logrus.Fields{"organization_id": client.OrganizationID, "clients": len(h.clients)}).Debug("dashboard connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
				h.log.WithFields(logrus.Fields{"organization_id": client.OrganizationID, "clients": len(h.clients)}).Debug("dashboard disconnected")
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.OrganizationID != msg.organizationID {
					continue
				}
				if !client.enqueue(msg.data) {
					// slow consumer
					delete(h.clients, client)
					client.close()
				}
			}
		}
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.close()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// BroadcastToOrganization queues a change for every dashboard of the organization.
func (h *Hub) BroadcastToOrganization(organizationID int, event domain.ChangeEvent) {
	data, err := encode(TypeChange, event)
	if err != nil {
		h.log.WithError(err).Warn("failed to encode change event")
		return
	}
	select {
	case h.broadcast <- orgMessage{organizationID: organizationID, data: data}:
	case <-h.done:
	}
}
