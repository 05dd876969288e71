package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/dalbodeule/loco-gate/internal/logging"
)

func TestWSRoundTrip(t *testing.T) {
	ln, err := NewWSListener("127.0.0.1:0", logging.NewLeveledJSONLogger("test", logging.ErrorLevel))
	if err != nil {
		t.Fatalf("NewWSListener: %v", err)
	}
	defer ln.Close()

	dialer := &WSDialer{
		URL:     fmt.Sprintf("ws://%s%s", ln.Addr(), ControlPath),
		Timeout: 2 * time.Second,
	}

	type dialResult struct {
		conn io.ReadWriteCloser
		err  error
	}
	dialCh := make(chan dialResult, 1)
	go func() {
		c, err := dialer.Dial(context.Background())
		dialCh <- dialResult{c, err}
	}()

	server, err := ln.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	defer server.Close()

	res := <-dialCh
	if res.err != nil {
		t.Fatalf("Dial: %v", res.err)
	}
	client := res.conn
	defer client.Close()

	// Bytes must come through intact and in order regardless of the
	// message boundaries the websocket layer happens to pick.
	want := []byte("hello over websocket")
	if _, err := client.Write(want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := make([]byte, len(want))
	if _, err := io.ReadFull(server, got); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Partial reads drain a large message across several calls.
	big := bytes.Repeat([]byte("x"), 1000)
	if _, err := server.Write(big); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var back bytes.Buffer
	buf := make([]byte, 64)
	for back.Len() < len(big) {
		n, err := client.Read(buf)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		back.Write(buf[:n])
	}
	if !bytes.Equal(back.Bytes(), big) {
		t.Fatal("large payload corrupted")
	}
}

func TestSelfSignedConfig(t *testing.T) {
	cfg, err := NewSelfSignedConfig("tunnel.test", "127.0.0.1")
	if err != nil {
		t.Fatalf("NewSelfSignedConfig: %v", err)
	}
	if len(cfg.Certificates) != 1 {
		t.Fatalf("certificates = %d, want 1", len(cfg.Certificates))
	}
}
