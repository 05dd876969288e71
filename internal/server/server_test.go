package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/dalbodeule/loco-gate/internal/auth"
	"github.com/dalbodeule/loco-gate/internal/client"
	"github.com/dalbodeule/loco-gate/internal/config"
	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/session"
	"github.com/dalbodeule/loco-gate/internal/transport"
)

const testToken = "tok-test-client"

type testRelay struct {
	registry   *session.Registry
	controlURL string
	publicAddr string
	cancel     context.CancelFunc
}

// startRelay brings up a full relay: websocket control listener plus
// public listener, sharing one registry.
func startRelay(t *testing.T) *testRelay {
	t.Helper()
	quiet := logging.NewLeveledJSONLogger("test", logging.ErrorLevel)

	cfg := &config.ServerConfig{
		HeartbeatInterval: 200 * time.Millisecond,
		SessionTimeout:    2 * time.Second,
		AuthTimeout:       2 * time.Second,
		MaxFramePayload:   64 * 1024,
	}
	registry := session.NewRegistry(quiet, cfg.SessionTimeout)
	validator := auth.NewStaticValidator([]string{testToken})

	ctrlLn, err := transport.NewWSListener("127.0.0.1:0", quiet)
	if err != nil {
		t.Fatalf("control listener: %v", err)
	}
	pubLn, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("public listener: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go NewControlServer(cfg, quiet, validator, registry).Serve(ctx, ctrlLn)
	go NewPublicServer(cfg, quiet, registry).Serve(ctx, pubLn)

	t.Cleanup(func() {
		cancel()
		registry.CloseAll()
	})
	return &testRelay{
		registry:   registry,
		controlURL: fmt.Sprintf("ws://%s%s", ctrlLn.Addr(), transport.ControlPath),
		publicAddr: pubLn.Addr().String(),
		cancel:     cancel,
	}
}

func testClientConfig(relay *testRelay, subdomain, localTarget string) *config.ClientConfig {
	return &config.ClientConfig{
		ServerURL:         relay.controlURL,
		AuthToken:         testToken,
		Subdomain:         subdomain,
		LocalTarget:       localTarget,
		HeartbeatInterval: 200 * time.Millisecond,
		PongTimeout:       2 * time.Second,
		ConnectTimeout:    2 * time.Second,
		MaxRetryInterval:  time.Second,
	}
}

// startEchoServer answers every connection by echoing its bytes back.
func startEchoServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("echo listener: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				_, _ = io.Copy(conn, conn)
				_ = conn.Close()
			}()
		}
	}()
	return ln.Addr().String()
}

func waitForSession(t *testing.T, r *session.Registry, identity string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, err := r.Lookup(identity); err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("session %q never became active", identity)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// The full path: public conn -> relay -> tunnel -> local echo -> back.
func TestEndToEndEcho(t *testing.T) {
	relay := startRelay(t)
	echoAddr := startEchoServer(t)

	quiet := logging.NewLeveledJSONLogger("test", logging.ErrorLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.New(testClientConfig(relay, "abc", echoAddr), quiet).Run(ctx)
	waitForSession(t, relay.registry, "abc")

	conn, err := net.Dial("tcp", relay.publicAddr)
	if err != nil {
		t.Fatalf("dial public: %v", err)
	}
	defer conn.Close()

	body := bytes.Repeat([]byte("0123456789"), 10)
	request := append([]byte("POST /echo HTTP/1.1\r\nHost: abc.tunnel.test\r\n\r\n"), body...)
	if _, err := conn.Write(request); err != nil {
		t.Fatalf("write request: %v", err)
	}
	if err := conn.(*net.TCPConn).CloseWrite(); err != nil {
		t.Fatalf("CloseWrite: %v", err)
	}

	got, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read echo: %v", err)
	}
	if !bytes.Equal(got, request) {
		t.Fatalf("echo mismatch:\n got %q\nwant %q", got, request)
	}
}

// Several public connections must map to independent streams of one session.
func TestConcurrentPublicConnections(t *testing.T) {
	relay := startRelay(t)
	echoAddr := startEchoServer(t)

	quiet := logging.NewLeveledJSONLogger("test", logging.ErrorLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.New(testClientConfig(relay, "multi", echoAddr), quiet).Run(ctx)
	waitForSession(t, relay.registry, "multi")

	const n = 5
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			conn, err := net.Dial("tcp", relay.publicAddr)
			if err != nil {
				results <- err
				return
			}
			defer conn.Close()

			msg := fmt.Sprintf("GET /%d HTTP/1.1\r\nHost: multi.x\r\n\r\npayload-%d", i, i)
			if _, err := conn.Write([]byte(msg)); err != nil {
				results <- err
				return
			}
			if err := conn.(*net.TCPConn).CloseWrite(); err != nil {
				results <- err
				return
			}
			got, err := io.ReadAll(conn)
			if err != nil {
				results <- err
				return
			}
			if string(got) != msg {
				results <- fmt.Errorf("conn %d echo mismatch: %q", i, got)
				return
			}
			results <- nil
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-results; err != nil {
			t.Fatal(err)
		}
	}
}

// No session for the host label: terminal 404 page, then close.
func TestPublicRejectsUnknownTunnel(t *testing.T) {
	relay := startRelay(t)

	conn, err := net.Dial("tcp", relay.publicAddr)
	if err != nil {
		t.Fatalf("dial public: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("GET / HTTP/1.1\r\nHost: ghost.tunnel.test\r\n\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	got, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	resp := string(got)
	if !strings.HasPrefix(resp, "HTTP/1.1 404 ") {
		t.Fatalf("response = %q, want 404", resp)
	}
	if !strings.Contains(resp, "Tunnel") {
		t.Fatalf("response body lacks tunnel error page: %q", resp)
	}
}

// A tunnel whose local target refuses connections must not leave the
// public caller hanging.
func TestRefusedLocalTargetClosesPublicConn(t *testing.T) {
	relay := startRelay(t)

	// Grab a port that nothing listens on.
	probe, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	deadAddr := probe.Addr().String()
	probe.Close()

	quiet := logging.NewLeveledJSONLogger("test", logging.ErrorLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.New(testClientConfig(relay, "dead", deadAddr), quiet).Run(ctx)
	waitForSession(t, relay.registry, "dead")

	conn, err := net.Dial("tcp", relay.publicAddr)
	if err != nil {
		t.Fatalf("dial public: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("GET / HTTP/1.1\r\nHost: dead.x\r\n\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, err := io.ReadAll(conn); err != nil {
		t.Fatalf("public conn not closed promptly: %v", err)
	}
}

// A rejected token is fatal for the client: no retry loop.
func TestAuthFailureIsFatal(t *testing.T) {
	relay := startRelay(t)

	cfg := testClientConfig(relay, "nope", "127.0.0.1:1")
	cfg.AuthToken = "wrong-token"
	quiet := logging.NewLeveledJSONLogger("test", logging.ErrorLevel)

	done := make(chan error, 1)
	go func() {
		done <- client.New(cfg, quiet).Run(context.Background())
	}()
	select {
	case err := <-done:
		if !errors.Is(err, client.ErrAuthRejected) {
			t.Fatalf("Run err = %v, want ErrAuthRejected", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("client kept retrying after auth rejection")
	}
}

// Two clients cannot hold the same identity at once.
func TestDuplicateIdentityRejected(t *testing.T) {
	relay := startRelay(t)
	echoAddr := startEchoServer(t)
	quiet := logging.NewLeveledJSONLogger("test", logging.ErrorLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.New(testClientConfig(relay, "claimed", echoAddr), quiet).Run(ctx)
	waitForSession(t, relay.registry, "claimed")

	before := relay.registry.Len()
	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	_ = client.New(testClientConfig(relay, "claimed", echoAddr), quiet).Run(ctx2)

	if relay.registry.Len() != before {
		t.Fatalf("registry len = %d, want %d", relay.registry.Len(), before)
	}
	if _, err := relay.registry.Lookup("claimed"); err != nil {
		t.Fatalf("original session lost: %v", err)
	}
}
