package server

import (
	"encoding/json"
	"sync"
)

// GameEvent is the payload published to the watchers of one game. The
// version lets a client decide whether its snapshot is stale without a
// second request.
type GameEvent struct {
	Type    string `json:"type"`
	Stage   string `json:"stage,omitempty"`
	Player  int    `json:"player,omitempty"`
	Version uint64 `json:"version"`
}

// Broker is an in-process pub/sub for game events, keyed by game token.
// It feeds both the SSE stream and the websocket watch.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel receiving JSON-encoded events for the game.
func (b *Broker) Subscribe(token string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[token] == nil {
		b.subs[token] = make(map[chan []byte]struct{})
	}
	b.subs[token][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the game's subscribers.
func (b *Broker) Unsubscribe(token string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[token], ch)
	if len(b.subs[token]) == 0 {
		delete(b.subs, token)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the game.
func (b *Broker) Publish(token string, event GameEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[token] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
