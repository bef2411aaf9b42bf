package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the gateway fronts a public deployment
		return true
	},
}

// Client is a single WebSocket subscriber. Position channels are gated on
// the investor address the client identified with; everything else is
// public market data.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	id       string
	investor string // bech32 address, empty until identified
	ip       string

	subscriptions map[string]bool
	subMu         sync.RWMutex

	messageCount int
	lastReset    time.Time
	rateMu       sync.Mutex

	connectedAt   time.Time
	lastMessageAt time.Time
}

// ClientMessage is the inbound frame format
type ClientMessage struct {
	Action  string          `json:"action"`  // "subscribe", "unsubscribe", "ping", "identify"
	Channel string          `json:"channel"` // channel for subscribe/unsubscribe
	Data    json.RawMessage `json:"data,omitempty"`
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, id, investor, ip string) *Client {
	return &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, sendBufferSize),
		id:            id,
		investor:      investor,
		ip:            ip,
		subscriptions: make(map[string]bool),
		connectedAt:   time.Now(),
		lastReset:     time.Now(),
	}
}

// readPump reads frames off the connection and feeds them to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			return
		}

		c.lastMessageAt = time.Now()

		if !c.withinRateLimit() {
			c.sendError("rate_limit_exceeded", "too many messages, slow down")
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("invalid_message", "failed to parse message")
			continue
		}

		switch msg.Action {
		case "subscribe":
			c.handleSubscribe(msg.Channel)
		case "unsubscribe":
			c.handleUnsubscribe(msg.Channel)
		case "ping":
			c.reply("pong", map[string]interface{}{"timestamp": time.Now().UnixMilli()})
		case "identify":
			c.handleIdentify(msg.Data)
		default:
			c.sendError("unknown_action", "unknown action: "+msg.Action)
		}
	}
}

// writePump drains the send buffer to the connection, coalescing queued
// frames, and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)

			for i := len(c.send); i > 0; i-- {
				_, _ = w.Write([]byte{'\n'})
				_, _ = w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleSubscribe(channel string) {
	if channel == "" {
		c.sendError("invalid_channel", "channel cannot be empty")
		return
	}
	if !c.canAccessChannel(channel) {
		c.sendError("unauthorized", "not authorized for channel: "+channel)
		return
	}

	c.subMu.Lock()
	if len(c.subscriptions) >= c.hub.config.MaxSubscriptions {
		c.subMu.Unlock()
		c.sendError("subscription_limit", "maximum subscription limit reached")
		return
	}
	c.subscriptions[channel] = true
	c.subMu.Unlock()

	c.hub.subscribe <- &SubscriptionRequest{
		Client:  c,
		Channel: channel,
		Action:  "subscribe",
	}
}

func (c *Client) handleUnsubscribe(channel string) {
	c.subMu.Lock()
	delete(c.subscriptions, channel)
	c.subMu.Unlock()

	c.hub.unsubscribe <- &SubscriptionRequest{
		Client:  c,
		Channel: channel,
		Action:  "unsubscribe",
	}
}

// handleIdentify binds the connection to an investor address, unlocking
// the positions:<address> channel. Address ownership is not proven here;
// position snapshots are public chain state either way.
func (c *Client) handleIdentify(data json.RawMessage) {
	var payload struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Address == "" {
		c.sendError("invalid_identify", "identify requires an address")
		return
	}

	c.investor = payload.Address
	c.reply("identified", map[string]interface{}{"address": c.investor})
}

// canAccessChannel gates channels: market data is public, position feeds
// are scoped to the identified investor.
func (c *Client) canAccessChannel(channel string) bool {
	for _, prefix := range []string{"pool:", "listings:", "trades:", "settlements:"} {
		if strings.HasPrefix(channel, prefix) {
			return true
		}
	}

	if strings.HasPrefix(channel, "positions:") {
		return c.investor != "" && channel == "positions:"+c.investor
	}

	return false
}

// withinRateLimit enforces the per-second inbound frame budget
func (c *Client) withinRateLimit() bool {
	c.rateMu.Lock()
	defer c.rateMu.Unlock()

	now := time.Now()
	if now.Sub(c.lastReset) >= time.Second {
		c.messageCount = 0
		c.lastReset = now
	}

	c.messageCount++
	return c.messageCount <= c.hub.config.MessageRateLimit
}

func (c *Client) reply(msgType string, data interface{}) {
	raw, _ := json.Marshal(&WSMessage{Type: msgType, Data: data})
	c.Send(raw)
}

func (c *Client) sendError(code, message string) {
	c.reply("error", map[string]string{"code": code, "message": message})
}

// Send queues a message for delivery, dropping it if the client is slow
func (c *Client) Send(message []byte) {
	select {
	case c.send <- message:
	default:
	}
}

// GetID returns the client ID
func (c *Client) GetID() string {
	return c.id
}

// GetInvestor returns the identified investor address, if any
func (c *Client) GetInvestor() string {
	return c.investor
}

// GetIP returns the client IP
func (c *Client) GetIP() string {
	return c.ip
}

// GetSubscriptions returns the client's subscribed channels
func (c *Client) GetSubscriptions() []string {
	c.subMu.RLock()
	defer c.subMu.RUnlock()

	subs := make([]string, 0, len(c.subscriptions))
	for sub := range c.subscriptions {
		subs = append(subs, sub)
	}
	return subs
}
