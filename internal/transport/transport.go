// Package transport 는 제어 채널이 올라탈 수 있는 물리 연결의 추상화입니다.
//
// 프레임 계층은 net.Conn 만 바라보므로, TLS/TCP 든 WebSocket 이든 여기서
// net.Conn 으로 맞춰서 올려보내면 상위 계층은 그대로 동작합니다.
package transport

import (
	"context"
	"net"
)

// Dialer 는 클라이언트 쪽에서 서버로 제어 채널 연결을 수립합니다.
type Dialer interface {
	// Dial 은 서버와의 연결을 수립해 net.Conn 으로 반환합니다.
	Dial(ctx context.Context) (net.Conn, error)
}

// Listener 는 서버 쪽에서 제어 채널 연결을 받습니다.
// net.Listener 와 동일한 계약이며, WebSocket 구현도 이 형태로 맞춥니다.
type Listener interface {
	Accept() (net.Conn, error)
	Close() error
	Addr() net.Addr
}
