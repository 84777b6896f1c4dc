package main

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120
	maxDroppedFrames  = 30
)

// outFrame is one queued websocket message
type outFrame struct {
	binary bool
	data   []byte
}

// Client represents a WebSocket connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan outFrame
	game       *Game
	sessionID  string
	remoteAddr string
	msgCount   int
	msgResetAt time.Time

	playerID EntityID // EntityIDInvalid until joined
	binary   atomic.Bool
	dropped  atomic.Int32
	kickOnce sync.Once
}

// NewClient creates a new Client bound to an arena
func NewClient(hub *Hub, conn *websocket.Conn, game *Game, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan outFrame, sendBufSize),
		game:       game,
		sessionID:  NewSessionID(),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("ws read error", "session", c.sessionID, "error", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			c.hub.log.Warn("rate limit exceeded, disconnecting", "addr", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			kind := websocket.TextMessage
			if frame.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, frame.data); err != nil {
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

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.hub.log.Error("marshal error", "error", err)
		return
	}
	c.enqueue(outFrame{data: data})
}

// SendState queues the snapshot in the client's wire format. A client that
// keeps a full buffer for maxDroppedFrames broadcasts in a row is disconnected.
func (c *Client) SendState(frames *StateFrames) {
	frame := outFrame{data: frames.JSON}
	if c.binary.Load() {
		frame = outFrame{binary: true, data: frames.Binary}
	}
	if c.enqueue(frame) {
		c.dropped.Store(0)
		return
	}
	if c.dropped.Add(1) >= maxDroppedFrames {
		c.kick()
	}
}

// enqueue is a non-blocking send; false means the buffer was full
func (c *Client) enqueue(frame outFrame) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// kick closes the connection; the read pump then unregisters the client
func (c *Client) kick() {
	c.kickOnce.Do(func() {
		c.hub.log.Warn("client too slow, disconnecting", "session", c.sessionID, "addr", c.remoteAddr)
		c.conn.Close()
	})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.hub.log.Debug("unmarshal error", "session", c.sessionID, "error", err)
		return
	}

	switch env.T {
	case MsgJoin:
		c.handleJoin(env.D)
	case MsgInput:
		c.handleInput(env.D)
	case MsgLeave:
		c.leave()
	default:
		c.hub.log.Debug("unknown message type", "session", c.sessionID, "type", env.T)
	}
}

func (c *Client) sendError(msg string) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: msg}})
}

func (c *Client) handleJoin(data []byte) {
	if c.playerID != EntityIDInvalid {
		c.sendError("already joined")
		return
	}
	var msg JoinMsg
	if err := decodePayload(data, &msg); err != nil {
		c.hub.log.Debug("bad join payload", "session", c.sessionID, "error", err)
		return
	}

	name := msg.Name
	if auth := c.hub.auth; auth != nil {
		if !auth.Allow(c.remoteAddr) {
			c.sendError("too many join attempts, try again later")
			return
		}
		granted, err := auth.ValidateTicket(msg.Ticket)
		if err != nil {
			c.hub.log.Info("join rejected", "addr", c.remoteAddr, "error", err)
			c.sendError("invalid ticket")
			return
		}
		if granted != "" {
			name = granted
		}
	}

	player, err := c.game.AddPlayer(c.sessionID, SanitizeName(name))
	if err != nil {
		if errors.Is(err, ErrArenaFull) {
			c.sendError("arena full")
		} else {
			c.sendError("join failed")
		}
		c.hub.log.Info("join failed", "session", c.sessionID, "error", err)
		return
	}
	c.playerID = player.ID
	c.binary.Store(msg.Binary)

	cfg := c.game.Config()
	c.SendJSON(Envelope{T: MsgInit, Data: InitMsg{
		ID:        player.ID,
		Mode:      cfg.Mode.String(),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Config:    cfg,
		Obstacles: c.game.Obstacles(),
	}})
	c.game.broadcastMsg(Envelope{T: MsgPlayerJoined, Data: PlayerJoinedMsg{ID: player.ID, Name: player.Name}})
	c.game.SetClient(c.sessionID, c)
	c.hub.log.Info("player joined", "arena", cfg.Mode.String(), "player", player.ID, "name", player.Name)
}

func (c *Client) handleInput(data []byte) {
	if c.playerID == EntityIDInvalid {
		return
	}
	var input ClientInput
	if err := decodePayload(data, &input); err != nil {
		c.hub.log.Debug("bad input payload", "session", c.sessionID, "error", err)
		return
	}
	c.game.HandleInput(c.sessionID, input.Normalize())
}

// leave removes the player from its arena and tells the others
func (c *Client) leave() {
	if c.playerID == EntityIDInvalid {
		return
	}
	c.playerID = EntityIDInvalid
	id, ok := c.game.RemovePlayer(c.sessionID)
	if !ok {
		return
	}
	c.game.broadcastMsg(Envelope{T: MsgPlayerLeft, Data: PlayerLeftMsg{ID: id}})
	c.hub.log.Info("player left", "arena", c.game.Config().Mode.String(), "player", id)
}
