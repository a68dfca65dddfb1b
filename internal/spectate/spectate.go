// Package spectate broadcasts every played turn to connected websocket
// spectators: a single hub, a client per connection, and a ticker-driven
// writer goroutine that also keeps the connection alive with pings.
package spectate

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"aiwargame/internal/board"
	"aiwargame/internal/coord"
	"aiwargame/internal/game"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Frame is one broadcast unit: the ply just played, what happened, and a
// compact rendering of the resulting board.
type Frame struct {
	Ply     int      `json:"ply"`
	Player  string   `json:"player"`
	Action  string   `json:"action"`
	Outcome string   `json:"outcome"`
	Board   []string `json:"board"`
	GameOver bool    `json:"gameOver"`
	Winner   string  `json:"winner,omitempty"`
}

// Client is one connected spectator.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected spectators and fans out every broadcast frame.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub builds an empty Hub. Call Run in its own goroutine before serving
// connections.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
	}
}

// Run is the hub's single-threaded event loop: it owns the clients map, so
// nothing else may touch it directly.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case data := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast marshals and fans out a Frame to every connected spectator.
func (h *Hub) Broadcast(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		log.Printf("spectate: marshal frame: %v", err)
		return
	}
	h.broadcast <- data
}

// ServeHTTP upgrades the request to a websocket and registers the resulting
// client as a spectator. Spectators are read-only: nothing they send is
// ever interpreted.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("spectate: upgrade: %v", err)
		return
	}
	c := &Client{hub: h, conn: conn, send: make(chan []byte, 32)}
	h.register <- c

	go c.writePump()
	go c.discardReads()
}

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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// discardReads drains and ignores anything a spectator sends, and
// unregisters the client once the connection drops.
func (c *Client) discardReads() {
	defer func() { c.hub.unregister <- c }()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// RenderBoard renders a compact per-row string representation, one row per
// element, using the <player-letter><kind-letter><health-digit> cell format
// (space-padded) so it can be dropped straight into Frame.Board.
func RenderBoard(b *board.Board) []string {
	dim := int(b.Dim())
	rows := make([]string, dim)
	for row := int8(0); row < b.Dim(); row++ {
		line := make([]byte, 0, dim*4)
		for col := int8(0); col < b.Dim(); col++ {
			cell := b.Get(coord.New(row, col))
			if cell.Empty() {
				line = append(line, '.', '.', '.', ' ')
				continue
			}
			health := cell.Unit.Health
			if health > 9 {
				health = 9
			}
			line = append(line, cell.Owner.Letter(), cell.Unit.Kind.Letter(), byte('0'+health), ' ')
		}
		rows[row] = string(line)
	}
	return rows
}

// FrameForTurn builds the Frame a completed, successful turn should
// broadcast.
func FrameForTurn(ply int, mover board.Player, a game.Action, outcome game.Outcome, s *game.State) Frame {
	f := Frame{
		Ply:     ply,
		Player:  mover.String(),
		Action:  a.String(),
		Outcome: outcome.String(),
		Board:   RenderBoard(s.Board),
	}
	if result, over := s.EndGameResult(); over {
		f.GameOver = true
		f.Winner = result.Status.String()
	}
	return f
}
