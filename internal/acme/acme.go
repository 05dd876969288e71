// Package acme 는 ACME 기반 인증서 관리를 추상화합니다. 서버 코어는
// tls.Config 만 소비하므로, 인증서를 어디서 가져오는지는 Manager 구현이
// 결정합니다.
package acme

import "crypto/tls"

// Manager 는 제어 채널/공개 리스너에 주입할 TLS 설정 공급자입니다.
type Manager interface {
	// TLSConfig 는 TLS 리스너에 주입할 tls.Config 를 반환합니다.
	TLSConfig() *tls.Config
}

// NewStaticManager 는 이미 만들어진 tls.Config 를 그대로 제공합니다.
// debug 모드의 self-signed 설정을 감쌀 때 사용합니다.
func NewStaticManager(cfg *tls.Config) Manager {
	return &staticManager{cfg: cfg}
}

type staticManager struct {
	cfg *tls.Config
}

func (m *staticManager) TLSConfig() *tls.Config { return m.cfg }
