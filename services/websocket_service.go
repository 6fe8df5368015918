package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"taskboard-app/taskboard/broker"
	"taskboard-app/taskboard/config"
	"taskboard-app/taskboard/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Subscription resources a client may ask for. "project" with an id also
// matches every task, assignment and comment event carrying that project id.
var subscribableResources = map[string]bool{
	"all":        true,
	"user":       true,
	"project":    true,
	"task":       true,
	"tag":        true,
	"assignment": true,
	"comment":    true,
}

type WebSocketServiceInterface interface {
	Start(ctx context.Context)
	Stop()
	HandleConnection(c *gin.Context)
	BroadcastMessage(message []byte)
	SetMessageSource(ch <-chan *nats.Msg)
	ClientCount() int
}

type Client struct {
	ID     string
	UserID string
	Hub    *WebSocketService
	Conn   *websocket.Conn
	Send   chan []byte

	mu            sync.RWMutex
	subscriptions map[string]bool
}

// ClientMessage is a frame sent by a websocket client
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type subscriptionRequest struct {
	Resource string `json:"resource"`
	ID       string `json:"id,omitempty"`
}

// WebSocketService fans broker events out to connected clients according to
// their subscriptions.
type WebSocketService struct {
	cfg      config.Config
	upgrader websocket.Upgrader

	clients      map[string]*Client
	clientsMutex sync.RWMutex

	source   <-chan *nats.Msg
	consumer *broker.Consumer

	mu        sync.Mutex
	isRunning bool
	stopChan  chan struct{}
	done      chan struct{}
}

func NewWebSocketService(cfg config.Config) *WebSocketService {
	return &WebSocketService{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// origins are checked by the CORS middleware
				return true
			},
		},
		clients: make(map[string]*Client),
	}
}

// SetMessageSource replaces the broker subscription, used by tests
func (ws *WebSocketService) SetMessageSource(ch <-chan *nats.Msg) {
	ws.source = ch
}

func (ws *WebSocketService) Start(ctx context.Context) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.isRunning {
		return
	}

	if ws.source == nil {
		consumer, err := broker.InitConsumer(ws.cfg, []string{broker.AllSubjects(ws.cfg.NATSSubjectPrefix)}, "")
		if err != nil {
			zap.L().Warn("websocket hub running without broker events", zap.Error(err))
		} else {
			ws.consumer = consumer
			ws.source = consumer.GetMessageChannel()
		}
	}

	ws.stopChan = make(chan struct{})
	ws.done = make(chan struct{})
	ws.isRunning = true
	go ws.run(ctx)

	zap.L().Info("websocket hub started")
}

func (ws *WebSocketService) Stop() {
	ws.mu.Lock()
	if !ws.isRunning {
		ws.mu.Unlock()
		return
	}
	ws.isRunning = false
	close(ws.stopChan)
	done := ws.done
	ws.mu.Unlock()

	<-done

	if ws.consumer != nil {
		ws.consumer.Close()
		ws.consumer = nil
	}

	ws.clientsMutex.Lock()
	for id, client := range ws.clients {
		if client.Conn != nil {
			client.Conn.Close()
		}
		close(client.Send)
		delete(ws.clients, id)
	}
	ws.clientsMutex.Unlock()

	zap.L().Info("websocket hub stopped")
}

func (ws *WebSocketService) run(ctx context.Context) {
	defer close(ws.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ws.stopChan:
			return
		case msg, ok := <-ws.source:
			if !ok {
				zap.L().Warn("broker channel closed, websocket hub no longer receives events")
				ws.source = nil
				continue
			}
			ws.handleEvent(msg.Data)
		}
	}
}

func (ws *WebSocketService) ClientCount() int {
	ws.clientsMutex.RLock()
	defer ws.clientsMutex.RUnlock()
	return len(ws.clients)
}

func (ws *WebSocketService) addClient(client *Client) {
	ws.clientsMutex.Lock()
	ws.clients[client.ID] = client
	ws.clientsMutex.Unlock()
	zap.L().Debug("websocket client connected", zap.String("client_id", client.ID), zap.String("user_id", client.UserID))
}

func (ws *WebSocketService) removeClient(client *Client) {
	ws.clientsMutex.Lock()
	if _, ok := ws.clients[client.ID]; ok {
		delete(ws.clients, client.ID)
		close(client.Send)
	}
	ws.clientsMutex.Unlock()
	zap.L().Debug("websocket client disconnected", zap.String("client_id", client.ID))
}

// BroadcastMessage sends message to every client regardless of subscriptions
func (ws *WebSocketService) BroadcastMessage(message []byte) {
	ws.deliver(message, func(*Client) bool { return true })
}

// handleEvent routes a broker message to the clients subscribed to it
func (ws *WebSocketService) handleEvent(data []byte) {
	var msg models.StandardMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		zap.L().Warn("dropping malformed broker message", zap.Error(err))
		return
	}

	sent := ws.deliver(data, func(c *Client) bool { return c.Matches(msg) })
	zap.L().Debug("event delivered", zap.String("event", msg.Event), zap.Int("clients", sent))
}

// deliver queues message for every client accepted by match. Clients whose
// buffer is full are dropped.
func (ws *WebSocketService) deliver(message []byte, match func(*Client) bool) int {
	ws.clientsMutex.Lock()
	defer ws.clientsMutex.Unlock()

	sent := 0
	for id, client := range ws.clients {
		if !match(client) {
			continue
		}
		select {
		case client.Send <- message:
			sent++
		default:
			zap.L().Warn("websocket client too slow, disconnecting", zap.String("client_id", id))
			close(client.Send)
			delete(ws.clients, id)
		}
	}
	return sent
}

// HandleConnection upgrades the request. The auth middleware has already put
// the principal into the context.
func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	userID := "anonymous"
	if v, ok := c.Get("userID"); ok {
		userID = fmt.Sprint(v)
	}

	client := newClient(ws, conn, userID)
	ws.addClient(client)

	go client.writePump()
	go client.readPump()
}

func newClient(hub *WebSocketService, conn *websocket.Conn, userID string) *Client {
	return &Client{
		ID:            uuid.New().String(),
		UserID:        userID,
		Hub:           hub,
		Conn:          conn,
		Send:          make(chan []byte, sendBuffer),
		subscriptions: make(map[string]bool),
	}
}

// Matches reports whether msg falls under one of the client's subscriptions
func (c *Client) Matches(msg models.StandardMessage) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.subscriptions["all"] || c.subscriptions[msg.ResourceType] {
		return true
	}
	if msg.ResourceID != "" && c.subscriptions[msg.ResourceType+":"+msg.ResourceID] {
		return true
	}
	return msg.ProjectID != "" && c.subscriptions["project:"+msg.ProjectID]
}

func (c *Client) Subscribe(resource, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscriptions[subscriptionKey(resource, id)] = true
}

func (c *Client) Unsubscribe(resource, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscriptions, subscriptionKey(resource, id))
}

func subscriptionKey(resource, id string) string {
	if id == "" {
		return resource
	}
	return resource + ":" + id
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.removeClient(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("websocket read failed", zap.String("client_id", c.ID), zap.Error(err))
			}
			return
		}
		c.processMessage(message)
	}
}

// writePump sends queued messages one frame each and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) processMessage(raw []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("invalid message")
		return
	}

	switch msg.Type {
	case "subscribe", "unsubscribe":
		var req subscriptionRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil || !subscribableResources[req.Resource] {
			c.sendError("invalid subscription")
			return
		}
		if msg.Type == "subscribe" {
			c.Subscribe(req.Resource, req.ID)
		} else {
			c.Unsubscribe(req.Resource, req.ID)
		}
		c.send(models.NewStandardMessage(models.SubscriptionMessage, msg.Type+"d", map[string]interface{}{
			"resource": req.Resource,
			"id":       req.ID,
		}))
	case "ping":
	default:
		c.sendError("unknown message type: " + msg.Type)
	}
}

func (c *Client) sendError(text string) {
	c.send(models.NewStandardMessage(models.ErrorMessage, "", map[string]interface{}{"message": text}))
}

// send queues msg for this client only. It goes through the hub lock so it
// never races with the hub closing Send.
func (c *Client) send(msg *models.StandardMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.Hub.deliver(data, func(other *Client) bool { return other == c })
}

var WebSocketServiceInstance WebSocketServiceInterface
