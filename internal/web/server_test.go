package web

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestRunStopsOnCancel(t *testing.T) {
	srv := testAPIServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, 0) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := testAPIServer(t)
	w := apiRequest(t, srv, "GET", "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := testAPIServer(t)
	w := apiRequest(t, srv, "PUT", "/api/listings", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
