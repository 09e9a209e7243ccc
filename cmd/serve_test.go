package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"
)

func TestRunServeShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	t.Setenv("PLACEMENT_HOST", "127.0.0.1")
	t.Setenv("PLACEMENT_PORT", strconv.Itoa(port))
	t.Setenv("PLACEMENT_LOG_LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- runServe(ctx, "testdata/config.yaml")
	}()

	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	up := false
	for i := 0; i < 100 && !up; i++ {
		select {
		case err := <-errCh:
			t.Fatalf("runServe exited early: %v", err)
		default:
		}
		if resp, err := http.Get(healthURL); err == nil {
			resp.Body.Close()
			up = resp.StatusCode == http.StatusOK
		}
		if !up {
			time.Sleep(20 * time.Millisecond)
		}
	}
	if !up {
		t.Fatalf("server never came up on port %d", port)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("runServe did not return after cancel")
	}
}
