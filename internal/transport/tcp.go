package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

// NewTLSListener 는 addr 에서 TLS 로 제어 채널 연결을 받는 Listener 를 만듭니다.
func NewTLSListener(addr string, cfg *tls.Config) (Listener, error) {
	ln, err := tls.Listen("tcp", addr, cfg)
	if err != nil {
		return nil, fmt.Errorf("transport: listen %s: %w", addr, err)
	}
	return ln, nil
}

// NewTCPListener 는 평문 TCP Listener 를 만듭니다. 로컬 테스트용입니다.
func NewTCPListener(addr string) (Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen %s: %w", addr, err)
	}
	return ln, nil
}

// TLSDialer 는 서버 주소로 TLS 제어 채널을 수립합니다.
//
// InsecureSkipVerify 는 debug 모드에서 self-signed 서버 인증서를
// 허용하기 위한 것으로, 운영 환경에서는 꺼져 있어야 합니다.
type TLSDialer struct {
	Addr               string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

func (d *TLSDialer) Dial(ctx context.Context) (net.Conn, error) {
	nd := &net.Dialer{Timeout: d.Timeout}
	tlsCfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: d.InsecureSkipVerify,
	}
	conn, err := (&tls.Dialer{NetDialer: nd, Config: tlsCfg}).DialContext(ctx, "tcp", d.Addr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", d.Addr, err)
	}
	return conn, nil
}

// TCPDialer 는 평문 TCP 로 연결합니다. 로컬 테스트용입니다.
type TCPDialer struct {
	Addr    string
	Timeout time.Duration
}

func (d *TCPDialer) Dial(ctx context.Context) (net.Conn, error) {
	nd := &net.Dialer{Timeout: d.Timeout}
	conn, err := nd.DialContext(ctx, "tcp", d.Addr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", d.Addr, err)
	}
	return conn, nil
}
