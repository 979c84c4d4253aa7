package websocket

import (
	"sync"
	"time"

	"github.com/anjiri1684/taskmate/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type Client struct {
	UserID uuid.UUID
	Conn   Conn
}

// Event is pushed to a single user's live connection.
type Event struct {
	UserID  uuid.UUID   `json:"-"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	broadcastBuffer = 256
	writeWait       = 10 * time.Second
)

// EventConnected is the first frame a client receives once registered.
const EventConnected = "connected"

var clients = make(map[uuid.UUID]Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *Event, broadcastBuffer)

// Publish queues event for delivery without blocking. Events are dropped when
// the queue is full.
func Publish(event *Event) {
	select {
	case Broadcast <- event:
	default:
		logger.Log.Warn("Live event queue full, dropping event",
			zap.String("type", event.Type),
			zap.String("user_id", event.UserID.String()))
	}
}

// write sends v with a deadline so a stalled client cannot hold up the hub.
func write(conn Conn, v interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func register(client *Client) {
	clientsMu.Lock()
	if old, ok := clients[client.UserID]; ok && old != client.Conn {
		_ = old.Close()
	}
	clients[client.UserID] = client.Conn
	clientsMu.Unlock()

	if err := write(client.Conn, &Event{UserID: client.UserID, Type: EventConnected}); err != nil {
		logger.Log.Warn("Error acknowledging client, dropping it",
			zap.String("user_id", client.UserID.String()), zap.Error(err))
		_ = client.Conn.Close()
		unregister(client)
	}
}

func unregister(client *Client) {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
		delete(clients, client.UserID)
	}
}

func deliver(event *Event) {
	clientsMu.RLock()
	conn, ok := clients[event.UserID]
	clientsMu.RUnlock()
	if !ok {
		return
	}

	if err := write(conn, event); err != nil {
		logger.Log.Warn("Error sending live event, dropping client",
			zap.String("user_id", event.UserID.String()), zap.Error(err))
		_ = conn.Close()
		unregister(&Client{UserID: event.UserID, Conn: conn})
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			logger.Log.Debug("Client registered", zap.String("user_id", client.UserID.String()))
			register(client)
		case client := <-Unregister:
			logger.Log.Debug("Client unregistered", zap.String("user_id", client.UserID.String()))
			unregister(client)
		case event := <-Broadcast:
			deliver(event)
		}
	}
}
