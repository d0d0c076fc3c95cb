package web

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNewServerRequiresAddrAndHandler(t *testing.T) {
	if _, err := NewServer("  ", http.NewServeMux()); err == nil {
		t.Error("expected error for blank address")
	}
	if _, err := NewServer("localhost:0", nil); err == nil {
		t.Error("expected error for nil handler")
	}
}

func TestListenAndServeStopsOnContextCancel(t *testing.T) {
	server, err := NewServer("127.0.0.1:0", http.NewServeMux())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.ListenAndServe(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe after cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}
