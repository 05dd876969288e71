package mux

import (
	"bytes"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/protocol"
)

func quietLogger() logging.Logger {
	return logging.NewLeveledJSONLogger("test", logging.ErrorLevel)
}

// muxPair wires two muxers over an in-memory pipe with read loops running.
func muxPair(t *testing.T, cfg Config) (*Muxer, *Muxer) {
	t.Helper()
	cfg.Logger = quietLogger()
	c1, c2 := net.Pipe()
	a := New(c1, cfg)
	b := New(c2, cfg)
	go a.ReadLoop()
	go b.ReadLoop()
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})
	return a, b
}

func TestOpenAccept(t *testing.T) {
	a, b := muxPair(t, Config{})

	sa, err := a.OpenStream("198.51.100.7:4312")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	sb, err := b.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if sa.ID() != sb.ID() {
		t.Fatalf("stream ids differ: %d vs %d", sa.ID(), sb.ID())
	}
	if sa.ID() != 1 {
		t.Fatalf("first stream id = %d, want 1", sa.ID())
	}

	sa2, err := a.OpenStream("")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	if sa2.ID() != 2 {
		t.Fatalf("second stream id = %d, want 2", sa2.ID())
	}
}

// Bytes written to one stream must come out of the same stream in order,
// even when frames of several streams interleave on the wire.
func TestInterleavedStreamsKeepOrder(t *testing.T) {
	a, b := muxPair(t, Config{})

	s1, err := a.OpenStream("")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	s2, err := a.OpenStream("")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	r1, err := b.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	r2, err := b.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 10; i++ {
			if _, err := s1.Write([]byte{'a', byte('0' + i)}); err != nil {
				done <- err
				return
			}
			if _, err := s2.Write([]byte{'b', byte('0' + i)}); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	buf1 := make([]byte, 20)
	if _, err := io.ReadFull(r1, buf1); err != nil {
		t.Fatalf("read stream 1: %v", err)
	}
	buf2 := make([]byte, 20)
	if _, err := io.ReadFull(r2, buf2); err != nil {
		t.Fatalf("read stream 2: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("writer: %v", err)
	}

	for i := 0; i < 10; i++ {
		if buf1[2*i] != 'a' || buf1[2*i+1] != byte('0'+i) {
			t.Fatalf("stream 1 out of order at chunk %d: %q", i, buf1)
		}
		if buf2[2*i] != 'b' || buf2[2*i+1] != byte('0'+i) {
			t.Fatalf("stream 2 out of order at chunk %d: %q", i, buf2)
		}
	}
}

func TestHalfClose(t *testing.T) {
	a, b := muxPair(t, Config{})

	sa, err := a.OpenStream("")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	sb, err := b.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	if _, err := sa.Write([]byte("request")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sa.CloseWrite(); err != nil {
		t.Fatalf("CloseWrite: %v", err)
	}

	got, err := io.ReadAll(sb)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, []byte("request")) {
		t.Fatalf("got %q, want %q", got, "request")
	}
	if sb.State() != StreamHalfClosedRemote {
		t.Fatalf("state = %q, want %q", sb.State(), StreamHalfClosedRemote)
	}

	// The reverse direction keeps flowing after the half-close.
	if _, err := sb.Write([]byte("response")); err != nil {
		t.Fatalf("Write after peer half-close: %v", err)
	}
	if err := sb.CloseWrite(); err != nil {
		t.Fatalf("CloseWrite: %v", err)
	}
	back, err := io.ReadAll(sa)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(back, []byte("response")) {
		t.Fatalf("got %q, want %q", back, "response")
	}

	if _, err := sa.Write([]byte("late")); !errors.Is(err, ErrWriteClosed) {
		t.Fatalf("Write after CloseWrite err = %v, want ErrWriteClosed", err)
	}
	if sa.State() != StreamClosed {
		t.Fatalf("state = %q, want %q", sa.State(), StreamClosed)
	}
}

// With a tiny window the writer must stall until the reader consumes and
// credit comes back; total in-flight bytes never exceed the window.
func TestWriteBlocksOnZeroWindow(t *testing.T) {
	a, b := muxPair(t, Config{MaxPayload: 8, InitialWindow: 16})

	sa, err := a.OpenStream("")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	sb, err := b.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	payload := make([]byte, 64)
	for i := range payload {
		payload[i] = byte(i)
	}

	wrote := make(chan error, 1)
	go func() {
		_, err := sa.Write(payload)
		wrote <- err
	}()

	// The writer can place at most one window of bytes without any reads.
	select {
	case err := <-wrote:
		t.Fatalf("Write finished without reader draining, err = %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	got := make([]byte, len(payload))
	if _, err := io.ReadFull(sb, got); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if err := <-wrote; err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("payload corrupted through flow control")
	}
}

// A peer that abandons a stream entirely must wake a writer stalled on
// flow-control credit; the stream dies alone and the session survives.
func TestPeerCloseUnblocksStalledWriter(t *testing.T) {
	a, b := muxPair(t, Config{MaxPayload: 8, InitialWindow: 16})

	sa, err := a.OpenStream("")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	sb, err := b.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	wrote := make(chan error, 1)
	go func() {
		_, err := sa.Write(make([]byte, 64))
		wrote <- err
	}()

	// One window of bytes goes out, then the writer stalls.
	select {
	case err := <-wrote:
		t.Fatalf("Write finished without any reads, err = %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	// The receiver walks away without draining anything.
	_ = sb.Close()

	select {
	case err := <-wrote:
		if err == nil || errors.Is(err, ErrWriteClosed) {
			t.Fatalf("Write err = %v, want a reset error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("writer still blocked after the peer abandoned the stream")
	}

	// The session itself must stay usable.
	if err := a.WriteControl(protocol.FramePing, nil); err != nil {
		t.Fatalf("control channel dead after stream reset: %v", err)
	}
}

// After the handshake both ends adopt the server's frame payload limit,
// so frames above the default must survive the round trip. The receiving
// side starts on the default and only learns the limit afterwards, the
// way a client does from AUTH_ACK.
func TestNegotiatedMaxPayload(t *testing.T) {
	const limit = protocol.DefaultMaxPayload + 32*1024

	c1, c2 := net.Pipe()
	a := New(c1, Config{MaxPayload: limit, Logger: quietLogger()})
	b := New(c2, Config{Logger: quietLogger()})
	go a.ReadLoop()
	go b.ReadLoop()
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})

	b.SetMaxPayload(limit)

	sa, err := a.OpenStream("")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	sb, err := b.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	payload := make([]byte, limit)
	for i := range payload {
		payload[i] = byte(i)
	}

	wrote := make(chan error, 1)
	go func() {
		_, err := sa.Write(payload)
		wrote <- err
	}()

	got := make([]byte, len(payload))
	if _, err := io.ReadFull(sb, got); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if err := <-wrote; err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("oversized frame corrupted in transit")
	}
}

// DATA for an unknown stream is an advisory event, not a session failure.
func TestUnknownStreamDataIsNonFatal(t *testing.T) {
	c1, c2 := net.Pipe()
	m := New(c2, Config{Logger: quietLogger()})
	errCh := make(chan error, 1)
	go func() { errCh <- m.ReadLoop() }()
	t.Cleanup(func() {
		_ = m.Close()
		_ = c1.Close()
	})

	if err := protocol.Encode(c1, &protocol.Frame{
		Type:     protocol.FrameData,
		StreamID: 99,
		Payload:  []byte("orphan"),
	}, protocol.DefaultMaxPayload); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// A control frame after the orphan DATA proves the loop survived.
	if err := protocol.Encode(c1, &protocol.Frame{
		Type:    protocol.FramePing,
		Payload: []byte("hi"),
	}, protocol.DefaultMaxPayload); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	select {
	case f := <-m.Control():
		if f.Type != protocol.FramePing || !bytes.Equal(f.Payload, []byte("hi")) {
			t.Fatalf("unexpected control frame: %v %q", f.Type, f.Payload)
		}
	case err := <-errCh:
		t.Fatalf("read loop died: %v", err)
	case <-time.After(time.Second):
		t.Fatal("control frame never delivered")
	}
}

// DATA on stream 0 is a protocol violation and must kill the session.
func TestDataOnControlStreamIsFatal(t *testing.T) {
	c1, c2 := net.Pipe()
	m := New(c2, Config{Logger: quietLogger()})
	errCh := make(chan error, 1)
	go func() { errCh <- m.ReadLoop() }()
	t.Cleanup(func() { _ = c1.Close() })

	if err := protocol.Encode(c1, &protocol.Frame{
		Type:     protocol.FrameData,
		StreamID: protocol.ControlStreamID,
		Payload:  []byte("x"),
	}, protocol.DefaultMaxPayload); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	select {
	case err := <-errCh:
		if !protocol.IsMalformed(err) {
			t.Fatalf("read loop err = %v, want malformed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("read loop did not terminate")
	}
	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("mux not shut down after fatal frame")
	}
}

// Session teardown must wake blocked stream readers with an error.
func TestTeardownUnblocksReaders(t *testing.T) {
	a, b := muxPair(t, Config{})

	sa, err := a.OpenStream("")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	if _, err := b.Accept(); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	readErr := make(chan error, 1)
	go func() {
		_, err := sa.Read(make([]byte, 1))
		readErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	_ = a.Close()

	select {
	case err := <-readErr:
		if err == nil || err == io.EOF {
			t.Fatalf("Read err = %v, want teardown error", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Read still blocked after mux close")
	}

	if _, err := a.OpenStream(""); !errors.Is(err, ErrMuxClosed) {
		t.Fatalf("OpenStream after close err = %v, want ErrMuxClosed", err)
	}
}
