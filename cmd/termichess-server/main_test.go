package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestServeWaitsForInFlightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	hs := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		_, _ = io.WriteString(w, "saved")
	})}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan error, 1)
	go func() { served <- serve(ctx, hs, ln) }()

	reply := make(chan string, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/chess/play")
		if err != nil {
			reply <- "error: " + err.Error()
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		reply <- string(body)
	}()

	<-started
	cancel()

	select {
	case err := <-served:
		t.Fatalf("serve returned %v while a request was still running", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	select {
	case err := <-served:
		if err != nil {
			t.Errorf("serve = %v; want nil", err)
		}
	case <-time.After(shutdownTimeout):
		t.Fatal("serve did not return after the request finished")
	}
	if got := <-reply; got != "saved" {
		t.Errorf("reply = %q; want %q", got, "saved")
	}
}

func TestServeListenerError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ln.Close()

	err = serve(context.Background(), &http.Server{}, ln)
	if err == nil {
		t.Fatal("serve on a closed listener should fail")
	}
}
