package server

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/dalbodeule/loco-gate/internal/config"
)

func TestFindHostHeader(t *testing.T) {
	cases := []struct {
		name  string
		buf   string
		want  string
		found bool
	}{
		{"lowercase", "GET / HTTP/1.1\r\nhost: abc.example.com\r\n", "abc.example.com", true},
		{"canonical", "GET / HTTP/1.1\r\nHost: abc.example.com\r\n", "abc.example.com", true},
		{"uppercase", "GET / HTTP/1.1\r\nHOST: abc.example.com\r\n", "abc.example.com", true},
		{"padded value", "GET / HTTP/1.1\r\nHost:   spaced.example.com  \r\n", "spaced.example.com", true},
		{"later header", "GET / HTTP/1.1\r\nAccept: */*\r\nHost: late.example.com\r\n", "late.example.com", true},
		// The final fragment has no CRLF yet, so it must not match even
		// though the header name is already visible.
		{"unterminated line", "GET / HTTP/1.1\r\nHost: partial.exam", "", false},
		{"no host at all", "GET / HTTP/1.1\r\nAccept: */*\r\n", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		host, ok := findHostHeader([]byte(tc.buf))
		if ok != tc.found || host != tc.want {
			t.Errorf("%s: findHostHeader = (%q, %v), want (%q, %v)", tc.name, host, ok, tc.want, tc.found)
		}
	}
}

func TestHeaderBlockDone(t *testing.T) {
	if headerBlockDone([]byte("GET / HTTP/1.1\r\nAccept: */*\r\n")) {
		t.Error("open header block reported as done")
	}
	if !headerBlockDone([]byte("GET / HTTP/1.1\r\nAccept: */*\r\n\r\nbody")) {
		t.Error("terminated header block not reported as done")
	}
}

func TestIdentityFromHost(t *testing.T) {
	withDomain := &PublicServer{cfg: &config.ServerConfig{Domain: "tunnel.test"}}
	cases := []struct {
		host string
		want string
	}{
		{"abc.tunnel.test", "abc"},
		{"abc.tunnel.test:443", "abc"},
		{"ABC.Tunnel.Test", "abc"},
		{"a.b.tunnel.test", ""}, // nested labels are not identities
		{"tunnel.test", ""},
		{"other.com", ""},
	}
	for _, tc := range cases {
		if got := withDomain.identityFromHost(tc.host); got != tc.want {
			t.Errorf("with domain: identityFromHost(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}

	noDomain := &PublicServer{cfg: &config.ServerConfig{}}
	if got := noDomain.identityFromHost("first.anything.example"); got != "first" {
		t.Errorf("without domain: got %q, want first label", got)
	}
	if got := noDomain.identityFromHost("bare-host"); got != "bare-host" {
		t.Errorf("without domain, no dot: got %q, want whole host", got)
	}
}

func TestPeekHost(t *testing.T) {
	req := "GET / HTTP/1.1\r\nUser-Agent: test\r\nHost: peek.example.com\r\n\r\n"
	br := bufio.NewReaderSize(bytes.NewReader([]byte(req)), headerPeekLimit)
	host, err := peekHost(br)
	if err != nil {
		t.Fatalf("peekHost: %v", err)
	}
	if host != "peek.example.com" {
		t.Fatalf("host = %q, want peek.example.com", host)
	}
	// The peek must not consume anything: the full request is still readable.
	rest := make([]byte, len(req))
	if _, err := br.Read(rest[:1]); err != nil {
		t.Fatalf("read after peek: %v", err)
	}
	if rest[0] != 'G' {
		t.Fatalf("first byte after peek = %q, want 'G'", rest[0])
	}

	// A complete header block without Host is a terminal error.
	br = bufio.NewReaderSize(bytes.NewReader([]byte("GET / HTTP/1.1\r\nAccept: */*\r\n\r\n")), headerPeekLimit)
	if _, err := peekHost(br); err == nil {
		t.Fatal("peekHost accepted a request without Host")
	}
}
