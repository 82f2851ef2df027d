package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "catalog.reloaded", Data: map[string]string{"version": "a1"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: catalog.reloaded") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"version":"a1"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func drain(ch chan []byte) []string {
	var out []string
	for {
		select {
		case msg := <-ch:
			out = append(out, string(msg))
		default:
			return out
		}
	}
}

func TestPublishReload_AlwaysDelivered(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishReload(ReloadEvent{Version: "v1", Counts: map[string]int{"tools": 3}})
	b.PublishReload(ReloadEvent{Version: "v2", Counts: map[string]int{"tools": 4}})

	time.Sleep(50 * time.Millisecond)
	msgs := drain(ch)
	if len(msgs) != 2 {
		t.Fatalf("reload events = %d, want 2", len(msgs))
	}
	if !strings.Contains(msgs[0], "event: catalog.reloaded") || !strings.Contains(msgs[0], `"version":"v1"`) {
		t.Errorf("first message = %q", msgs[0])
	}
	if !strings.Contains(msgs[1], `"tools":4`) {
		t.Errorf("second message = %q", msgs[1])
	}
}

func TestPublishReload_FailureThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// First failure is sent, the immediate second one is dropped.
	b.PublishReload(ReloadEvent{Error: "bad json"})
	b.PublishReload(ReloadEvent{Error: "bad json again"})
	// Success is never throttled.
	b.PublishReload(ReloadEvent{Version: "v3"})

	time.Sleep(50 * time.Millisecond)
	failed, reloaded := 0, 0
	for _, m := range drain(ch) {
		switch {
		case strings.Contains(m, "event: catalog.failed"):
			failed++
		case strings.Contains(m, "event: catalog.reloaded"):
			reloaded++
		}
	}
	if failed != 1 {
		t.Errorf("failed events = %d, want 1 (throttled)", failed)
	}
	if reloaded != 1 {
		t.Errorf("reloaded events = %d, want 1", reloaded)
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	// Start handler in background.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.PublishReload(ReloadEvent{Version: "x1"})
	time.Sleep(50 * time.Millisecond)

	// Cancel context to disconnect.
	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: catalog.reloaded") {
		t.Errorf("handler output missing event: %q", body)
	}

	// Client should be cleaned up.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill buffer (capacity 64) and then one more should not block.
	for i := 0; i < 70; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
	// If we reach here without deadlock, the test passes.
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	// Should be safe no-op after close.
	b.Publish(Event{Type: "catalog.reloaded", Data: map[string]string{"version": "x"}})
	b.PublishReload(ReloadEvent{Version: "x"})
}

func TestSSEHandler_RetryAndKeepAlive(t *testing.T) {
	b := NewBroker(time.Second)
	b.KeepAlive = 20 * time.Millisecond
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	body := w.Body.String()
	if !strings.HasPrefix(body, "retry: 3000\n\n") {
		t.Errorf("stream should start with the retry field: %q", body)
	}
	if !strings.Contains(body, ": ping\n\n") {
		t.Errorf("idle stream should carry keep-alive pings: %q", body)
	}
}
