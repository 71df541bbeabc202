package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dukerupert/hudson/internal/events"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, propertyID string) *Client {
	return &Client{
		hub:        hub,
		send:       make(chan []byte, sendBufferSize),
		propertyID: propertyID,
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "")
	c2 := mockClient(hub, "")
	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)
	hub.Unregister(c1)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}

	hub.Unregister(c2)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestPublishFiltersByProperty(t *testing.T) {
	hub := NewHub(slog.Default())

	all := mockClient(hub, "")
	mine := mockClient(hub, "p1")
	other := mockClient(hub, "p2")
	for _, c := range []*Client{all, mine, other} {
		hub.Register(c)
	}

	e := events.New("blueprint", "plan_item_added", "item-1").WithProperty("p1", 4)
	if err := hub.Publish(context.Background(), e); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, c := range []*Client{all, mine} {
		select {
		case data := <-c.send:
			var got events.Event
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "blueprint_plan_item_added" || got.PropertyID != "p1" || got.Version != 4 {
				t.Errorf("got %+v", got)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for event")
		}
	}

	select {
	case <-other.send:
		t.Error("client watching p2 received a p1 event")
	default:
	}
}

func TestPublishFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub, "")
	hub.Register(c)

	for i := 0; i < sendBufferSize+1; i++ {
		if err := hub.Publish(context.Background(), events.New("property", "updated", "p1")); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	count := 0
	for {
		select {
		case <-c.send:
			count++
			continue
		default:
		}
		break
	}
	if count != sendBufferSize {
		t.Errorf("expected %d messages, got %d", sendBufferSize, count)
	}
	hub.Unregister(c)
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub, "")
			hub.Register(c)
			hub.Publish(context.Background(), events.New("test", "concurrent", "x"))
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}
