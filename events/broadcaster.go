package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Broadcaster fans events out to the connected SSE streams as JSON strings.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[chan string]bool
	timeout time.Duration
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan string]bool),
		timeout: time.Second,
	}
}

func (b *Broadcaster) Register(client chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[client] = true
}

func (b *Broadcaster) Unregister(client chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clients[client] {
		delete(b.clients, client)
		close(client)
	}
}

// Broadcast sends message to every client. A client that does not take it
// within the timeout is dropped.
func (b *Broadcaster) Broadcast(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for client := range b.clients {
		select {
		case client <- message:
		case <-time.After(b.timeout):
			delete(b.clients, client)
			close(client)
		}
	}
}

func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func (b *Broadcaster) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	b.Broadcast(string(data))
	return nil
}
