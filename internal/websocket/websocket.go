package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abrezinsky/totebet/internal/logger"
	"github.com/abrezinsky/totebet/internal/models"
	"github.com/abrezinsky/totebet/internal/services"
	"github.com/abrezinsky/totebet/internal/tote"
)

// Message types pushed to race watchers
const (
	TypeRaceStatus    = "race_status"
	TypeBetAccepted   = "bet_accepted"
	TypeRaceConcluded = "race_concluded"
	TypeDividends     = "dividends"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Tote boards are served from other hosts on the course network
	},
}

// StatusSource supplies the race snapshot sent to newly connected clients
type StatusSource interface {
	RaceInfo(ctx context.Context) (*services.RaceInfo, error)
}

// ClientGauge observes the number of connected clients
type ClientGauge interface {
	SetWebSocketClients(n int)
}

// Ensure Hub implements services.Broadcaster
var _ services.Broadcaster = (*Hub)(nil)

// Hub maintains the set of active clients and broadcasts race events to them
type Hub struct {
	log        logger.Logger
	clients    map[*Client]bool
	broadcast  chan models.WSMessage
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	status     StatusSource
	gauge      ClientGauge
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan models.WSMessage
}

// New creates a new Hub. gauge may be nil.
func New(log logger.Logger, status StatusSource, gauge ClientGauge) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.WSMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		status:     status,
		gauge:      gauge,
	}
}

// Start begins the hub's main loop in a goroutine
func (h *Hub) Start() {
	go h.run()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.observe(total)
			h.log.Debug("Client connected", "total_clients", total)

			go h.sendStatus(client)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.observe(total)
			h.log.Debug("Client disconnected", "total_clients", total)

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

func (h *Hub) observe(total int) {
	if h.gauge != nil {
		h.gauge.SetWebSocketClients(total)
	}
}

// sendStatus greets a new client with the current race snapshot
func (h *Hub) sendStatus(client *Client) {
	if h.status == nil {
		return
	}
	info, err := h.status.RaceInfo(context.Background())
	if err != nil {
		h.log.Warn("Race status unavailable for new client", "error", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	select {
	case client.send <- models.WSMessage{Type: TypeRaceStatus, Payload: info}:
	default:
	}
}

// BroadcastMessage sends a message to all connected clients
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) {
	h.broadcast <- models.WSMessage{
		Type:    msgType,
		Payload: payload,
	}
}

// BroadcastBetAccepted implements services.Broadcaster
func (h *Hub) BroadcastBetAccepted(betID, product string) {
	h.BroadcastMessage(TypeBetAccepted, map[string]string{
		"bet_id":  betID,
		"product": product,
	})
}

// BroadcastRaceConcluded implements services.Broadcaster
func (h *Hub) BroadcastRaceConcluded(runners []string) {
	h.BroadcastMessage(TypeRaceConcluded, map[string]interface{}{
		"runners": runners,
	})
}

// BroadcastDividends implements services.Broadcaster
func (h *Hub) BroadcastDividends(report *tote.DividendReport) {
	h.BroadcastMessage(TypeDividends, map[string]interface{}{
		"report": report,
	})
}

// readPump drains the connection so control frames are processed.
// Watchers never send commands; anything they send is logged and dropped.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("WebSocket error", "error", err)
			}
			break
		}

		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			c.hub.log.Debug("Ignoring client message", "type", msg.Type)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs handles websocket requests from clients
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan models.WSMessage, sendBuffer),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}
