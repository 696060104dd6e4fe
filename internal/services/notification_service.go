package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/store"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	clientBufferSize = 256
	maxPersistent    = 20
	pongWait         = 60 * time.Second
	pingPeriod       = 30 * time.Second
	writeWait        = 10 * time.Second
)

// Client represents a browser websocket connection
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// NotificationType defines types of messages pushed to browsers
type NotificationType string

const (
	// NotificationTypeToast carries a models.Notification
	NotificationTypeToast NotificationType = "notification"
	// NotificationTypeDismissed carries the id of a dismissed persistent notification
	NotificationTypeDismissed NotificationType = "notification_dismissed"
	// NotificationTypeStateChanged carries a store.Snapshot
	NotificationTypeStateChanged NotificationType = "state_changed"
)

// NotificationMessage represents a message sent to clients
type NotificationMessage struct {
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Payload   interface{}      `json:"payload"`
}

// SnapshotSource publishes store snapshots
type SnapshotSource interface {
	Subscribe() (<-chan store.Snapshot, func())
}

// NotificationService fans notifications and state changes out to every
// connected browser. Persistent notifications are replayed to clients
// that connect later, until dismissed. Client and persistent state is
// owned by the run loop.
type NotificationService struct {
	logger     *utils.Logger
	clients    map[*Client]bool
	persistent []models.Notification
	register   chan *Client
	unregister chan *Client
	broadcast  chan *NotificationMessage
	dismiss    chan string
	done       chan struct{}
	closeOnce  sync.Once
}

// NewNotificationService creates a new notification service
func NewNotificationService(logger *utils.Logger) *NotificationService {
	service := &NotificationService{
		logger:     logger.Named("notification_service"),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *NotificationMessage),
		dismiss:    make(chan string),
		done:       make(chan struct{}),
	}

	go service.run()
	return service
}

// RegisterClient adds a browser connection and starts its pumps
func (s *NotificationService) RegisterClient(conn *websocket.Conn) *Client {
	client := &Client{
		conn: conn,
		send: make(chan []byte, clientBufferSize),
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return client
	}

	go s.readPump(client)
	go s.writePump(client)

	return client
}

// Notify implements store.Notifier
func (s *NotificationService) Notify(notification models.Notification) {
	s.publish(NotificationTypeToast, notification)
}

// Dismiss drops a persistent notification and tells every client
func (s *NotificationService) Dismiss(id string) {
	select {
	case s.dismiss <- id:
	case <-s.done:
	}
}

// WatchStore pushes every snapshot from source until ctx ends or the
// service is closed
func (s *NotificationService) WatchStore(ctx context.Context, source SnapshotSource) {
	updates, cancel := source.Subscribe()

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case snap, ok := <-updates:
				if !ok {
					return
				}
				s.publish(NotificationTypeStateChanged, snap)
			}
		}
	}()
}

// Close disconnects every client and stops the service
func (s *NotificationService) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *NotificationService) publish(notificationType NotificationType, payload interface{}) {
	message := &NotificationMessage{
		Type:      notificationType,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	select {
	case s.broadcast <- message:
	case <-s.done:
	}
}

// run processes messages in the main loop
func (s *NotificationService) run() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			return

		case client := <-s.register:
			s.clients[client] = true
			for _, notification := range s.persistent {
				s.sendToClient(client, &NotificationMessage{
					Type:      NotificationTypeToast,
					Timestamp: notification.CreatedAt,
					Payload:   notification,
				})
			}
			s.logger.Debug("Client registered", zap.Int("clients", len(s.clients)))

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.logger.Debug("Client unregistered", zap.Int("clients", len(s.clients)))

		case message := <-s.broadcast:
			if notification, ok := message.Payload.(models.Notification); ok && notification.Persistent {
				s.persistent = append(s.persistent, notification)
				if len(s.persistent) > maxPersistent {
					s.persistent = s.persistent[len(s.persistent)-maxPersistent:]
				}
			}
			for client := range s.clients {
				s.sendToClient(client, message)
			}

		case id := <-s.dismiss:
			kept := s.persistent[:0]
			for _, notification := range s.persistent {
				if notification.ID != id {
					kept = append(kept, notification)
				}
			}
			s.persistent = kept

			message := &NotificationMessage{
				Type:      NotificationTypeDismissed,
				Timestamp: time.Now(),
				Payload:   map[string]string{"id": id},
			}
			for client := range s.clients {
				s.sendToClient(client, message)
			}
		}
	}
}

// sendToClient queues a message for a client. Clients that cannot keep up
// are dropped. Only called from the run loop.
func (s *NotificationService) sendToClient(client *Client, message *NotificationMessage) {
	jsonMessage, err := json.Marshal(message)
	if err != nil {
		s.logger.Error("Failed to marshal notification message",
			zap.Error(err),
			zap.String("type", string(message.Type)))
		return
	}

	select {
	case client.send <- jsonMessage:
	default:
		delete(s.clients, client)
		close(client.send)
		s.logger.Warn("Client buffer full, connection closed")
	}
}

// readPump reads client commands until the connection fails
func (s *NotificationService) readPump(client *Client) {
	defer func() {
		select {
		case s.unregister <- client:
		case <-s.done:
		}
		client.conn.Close()
	}()

	client.conn.SetReadLimit(4096)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure,
			) {
				s.logger.Warn("Unexpected websocket close", zap.Error(err))
			}
			break
		}

		var clientMsg struct {
			Action string `json:"action"`
			ID     string `json:"id"`
		}

		if err := json.Unmarshal(message, &clientMsg); err != nil {
			s.logger.Warn("Invalid client message",
				zap.Error(err),
				zap.ByteString("message", message))
			continue
		}

		switch clientMsg.Action {
		case "dismiss":
			if clientMsg.ID != "" {
				s.Dismiss(clientMsg.ID)
			}
		}
	}
}

// writePump writes queued messages and keeps the connection alive
func (s *NotificationService) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
