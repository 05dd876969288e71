package protocol

import (
	"bytes"
	"io"
	"testing"
)

// TestEncodeParseRoundTrip verifies that Parse(Encode(f)) reproduces the
// original frame for every frame type.
func TestEncodeParseRoundTrip(t *testing.T) {
	frames := []*Frame{
		{Type: FrameAuth, StreamID: ControlStreamID, Payload: []byte(`{"token":"abc"}`)},
		{Type: FrameAuthAck, StreamID: ControlStreamID, Payload: []byte(`{"session_id":"s1","identity":"abc"}`)},
		{Type: FrameOpen, StreamID: 1, Payload: []byte(`{"remote_addr":"10.0.0.1:55000"}`)},
		{Type: FrameData, StreamID: 1, Payload: []byte("hello tunnel")},
		{Type: FrameData, StreamID: 7, Payload: nil},
		{Type: FrameWindowUpdate, StreamID: 1, Payload: WindowPayload(4096)},
		{Type: FrameClose, StreamID: 1},
		{Type: FramePing, StreamID: ControlStreamID, Payload: []byte{0, 0, 0, 0, 0, 0, 0, 42}},
		{Type: FramePong, StreamID: ControlStreamID, Payload: []byte{0, 0, 0, 0, 0, 0, 0, 42}},
		{Type: FrameError, StreamID: ControlStreamID, Payload: []byte(`{"code":"auth_failed"}`)},
	}

	for _, want := range frames {
		var buf bytes.Buffer
		if err := Encode(&buf, want, 0); err != nil {
			t.Fatalf("encode %s: %v", want.Type, err)
		}

		got, n, err := Parse(buf.Bytes(), 0)
		if err != nil {
			t.Fatalf("parse %s: %v", want.Type, err)
		}
		if n != buf.Len() {
			t.Errorf("%s: consumed %d bytes, want %d", want.Type, n, buf.Len())
		}
		if got.Type != want.Type || got.StreamID != want.StreamID {
			t.Errorf("%s: header mismatch: got (%s, %d)", want.Type, got.Type, got.StreamID)
		}
		if !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("%s: payload mismatch: got %q want %q", want.Type, got.Payload, want.Payload)
		}
	}
}

// TestParseTruncated verifies that every strict prefix of an encoded frame
// yields ErrIncomplete and never a wrong frame.
func TestParseTruncated(t *testing.T) {
	var buf bytes.Buffer
	f := &Frame{Type: FrameData, StreamID: 3, Payload: []byte("0123456789")}
	if err := Encode(&buf, f, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}

	full := buf.Bytes()
	for i := 0; i < len(full); i++ {
		got, n, err := Parse(full[:i], 0)
		if err != ErrIncomplete {
			t.Fatalf("prefix %d: got (%v, %d, %v), want ErrIncomplete", i, got, n, err)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	// Unknown frame type.
	var buf bytes.Buffer
	if err := Encode(&buf, &Frame{Type: FrameData, StreamID: 1, Payload: []byte("x")}, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	raw := buf.Bytes()
	raw[0] = 0xEE
	if _, _, err := Parse(raw, 0); !IsMalformed(err) {
		t.Errorf("unknown type: got %v, want MalformedError", err)
	}

	// Declared length exceeding the maximum payload size.
	raw[0] = byte(FrameData)
	raw[5], raw[6], raw[7], raw[8] = 0xFF, 0xFF, 0xFF, 0xFF
	if _, _, err := Parse(raw, 0); !IsMalformed(err) {
		t.Errorf("oversized length: got %v, want MalformedError", err)
	}

	// Encode must refuse an oversized payload up front.
	big := make([]byte, DefaultMaxPayload+1)
	if err := Encode(io.Discard, &Frame{Type: FrameData, StreamID: 1, Payload: big}, 0); !IsMalformed(err) {
		t.Errorf("encode oversized: got %v, want MalformedError", err)
	}
}

// dribbleReader returns at most one byte per Read call to exercise the
// decoder's resumability across partial reads.
type dribbleReader struct {
	data []byte
	pos  int
}

func (d *dribbleReader) Read(p []byte) (int, error) {
	if d.pos >= len(d.data) {
		return 0, io.EOF
	}
	p[0] = d.data[d.pos]
	d.pos++
	return 1, nil
}

func TestDecoderPartialReads(t *testing.T) {
	var buf bytes.Buffer
	frames := []*Frame{
		{Type: FrameOpen, StreamID: 1, Payload: []byte(`{}`)},
		{Type: FrameData, StreamID: 1, Payload: []byte("first chunk")},
		{Type: FrameData, StreamID: 2, Payload: []byte("interleaved")},
		{Type: FrameClose, StreamID: 1},
	}
	for _, f := range frames {
		if err := Encode(&buf, f, 0); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}

	dec := NewDecoder(&dribbleReader{data: buf.Bytes()}, 0)
	for i, want := range frames {
		got, err := dec.Decode()
		if err != nil {
			t.Fatalf("decode frame %d: %v", i, err)
		}
		if got.Type != want.Type || got.StreamID != want.StreamID || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("frame %d mismatch: got (%s, %d, %q)", i, got.Type, got.StreamID, got.Payload)
		}
	}
	if _, err := dec.Decode(); err != io.EOF {
		t.Errorf("after all frames: got %v, want io.EOF", err)
	}
}

func TestDecoderTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Frame{Type: FrameData, StreamID: 1, Payload: []byte("cut short")}, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	raw := buf.Bytes()[:buf.Len()-3]

	dec := NewDecoder(bytes.NewReader(raw), 0)
	if _, err := dec.Decode(); err != ErrIncomplete {
		t.Errorf("truncated stream: got %v, want ErrIncomplete", err)
	}
}

// TestDecoderSetMaxPayload verifies that raising the limit after creation
// lets frames above the default through, while a decoder left at the
// default still rejects them.
func TestDecoderSetMaxPayload(t *testing.T) {
	const big = DefaultMaxPayload + 1024

	var buf bytes.Buffer
	payload := make([]byte, big)
	if err := Encode(&buf, &Frame{Type: FrameData, StreamID: 1, Payload: payload}, big); err != nil {
		t.Fatalf("encode: %v", err)
	}

	dec := NewDecoder(bytes.NewReader(buf.Bytes()), 0)
	if _, err := dec.Decode(); !IsMalformed(err) {
		t.Fatalf("default limit: got %v, want MalformedError", err)
	}

	dec = NewDecoder(bytes.NewReader(buf.Bytes()), 0)
	dec.SetMaxPayload(big)
	f, err := dec.Decode()
	if err != nil {
		t.Fatalf("raised limit: %v", err)
	}
	if uint32(len(f.Payload)) != big {
		t.Fatalf("payload length = %d, want %d", len(f.Payload), big)
	}
}

func TestWindowPayloadRoundTrip(t *testing.T) {
	delta, err := ParseWindowPayload(WindowPayload(32768))
	if err != nil {
		t.Fatalf("parse window payload: %v", err)
	}
	if delta != 32768 {
		t.Errorf("delta = %d, want 32768", delta)
	}

	if _, err := ParseWindowPayload([]byte{1, 2}); !IsMalformed(err) {
		t.Errorf("short payload: got %v, want MalformedError", err)
	}
	if _, err := ParseWindowPayload(WindowPayload(0)); !IsMalformed(err) {
		t.Errorf("zero credit: got %v, want MalformedError", err)
	}
}

func TestNormalizeIdentity(t *testing.T) {
	cases := map[string]string{
		"abc":        "abc",
		"  My-App  ": "my-app",
		"app01":      "app01",
		"-bad":       "",
		"bad-":       "",
		"has.dot":    "",
		"":           "",
	}
	for in, want := range cases {
		if got := NormalizeIdentity(in); got != want {
			t.Errorf("NormalizeIdentity(%q) = %q, want %q", in, got, want)
		}
	}
}
