// Package broker implements the HTTP JSON move-relay protocol: a client
// that posts a played move and fetches the next one, and a server that
// holds the single most recent move for a waiting client to collect.
// Grounded on the original's reqwest-based broker_post_move/broker_get_move,
// reimplemented against net/http since no example repo in the corpus
// imports a third-party HTTP client.
package broker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"aiwargame/internal/coord"
)

// Data is the wire shape of one relayed move.
type Data struct {
	From coord.Coord `json:"from"`
	To   coord.Coord `json:"to"`
	Turn int         `json:"turn"`
}

// Reply is the wire shape of every broker response, success or failure.
type Reply struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    *Data  `json:"data,omitempty"`
}

// Client posts and fetches moves against a broker URL.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// NewClient builds a Client with a sane default timeout.
func NewClient(url string) *Client {
	return &Client{URL: url, HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

// PostMove reports a played move to the broker and confirms the broker
// echoed back the same data. The request carries a fresh UUID as its
// X-Request-Id header purely for server-side log correlation; the broker
// protocol itself doesn't use it.
func (c *Client) PostMove(from, to coord.Coord, turn int) error {
	data := Data{From: from, To: to, Turn: turn}
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("broker: marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("broker: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("broker: post move: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("broker: read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNotFound:
		var reply Reply
		if err := json.Unmarshal(raw, &reply); err != nil {
			return fmt.Errorf("broker: decode reply: %w", err)
		}
		if resp.StatusCode == http.StatusNotFound {
			if reply.Error != "" {
				return fmt.Errorf("broker: %s", reply.Error)
			}
			return ErrUnknown
		}
		if reply.Data != nil && *reply.Data == data {
			return nil
		}
		return ErrUnknown
	default:
		return fmt.Errorf("broker: http status %d", resp.StatusCode)
	}
}

// GetMove fetches the next move waiting at the broker.
func (c *Client) GetMove() (coord.CoordPair, error) {
	resp, err := c.HTTPClient.Get(c.URL)
	if err != nil {
		return coord.CoordPair{}, fmt.Errorf("broker: get move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return coord.CoordPair{}, fmt.Errorf("broker: http status %d", resp.StatusCode)
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return coord.CoordPair{}, fmt.Errorf("broker: decode reply: %w", err)
	}
	if reply.Data == nil {
		return coord.CoordPair{}, ErrUnknown
	}
	return coord.NewPair(reply.Data.From, reply.Data.To), nil
}

// ErrUnknown mirrors the original's catch-all "Broker error: unknown".
var ErrUnknown = fmt.Errorf("broker: unknown error")

// Server holds the single most recently posted move for later collection.
// It exists so the CLI can be driven end-to-end against an external
// process without a real opponent broker present (tests, local demos).
type Server struct {
	mu   sync.Mutex
	last *Data
}

// NewServer builds an empty Server.
func NewServer() *Server {
	return &Server{}
}

// ServeHTTP implements the broker wire protocol: POST stores the move and
// echoes it back, GET returns whatever was last stored.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var data Data
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			writeReply(w, http.StatusBadRequest, Reply{Success: false, Error: err.Error()})
			return
		}
		s.mu.Lock()
		s.last = &data
		s.mu.Unlock()
		writeReply(w, http.StatusOK, Reply{Success: true, Data: &data})
	case http.MethodGet:
		s.mu.Lock()
		last := s.last
		s.mu.Unlock()
		if last == nil {
			writeReply(w, http.StatusNotFound, Reply{Success: false, Error: "no move available"})
			return
		}
		writeReply(w, http.StatusOK, Reply{Success: true, Data: last})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeReply(w http.ResponseWriter, status int, reply Reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(reply)
}
