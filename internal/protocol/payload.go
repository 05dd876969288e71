package protocol

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
)

// 제어 프레임(AUTH/AUTH_ACK/ERROR/OPEN)의 payload 는 JSON 입니다.
// hop-gate 의 handshake 메시지 포맷을 그대로 따릅니다.
// DATA 는 raw bytes, WINDOW_UPDATE 는 4바이트 big-endian 크레딧입니다.

// AuthRequest 는 transport 수립 직후 클라이언트가 보내는 첫 프레임의 payload 입니다.
type AuthRequest struct {
	Token string `json:"token"`
	// Subdomain 은 클라이언트가 희망하는 public identity 입니다. 비어 있으면
	// 서버가 임의의 미사용 식별자를 생성합니다.
	Subdomain string `json:"subdomain,omitempty"`
}

// AuthAck 는 인증 성공 응답 payload 입니다.
type AuthAck struct {
	SessionID string `json:"session_id"`
	Identity  string `json:"identity"`
	// HeartbeatInterval 은 서버가 기대하는 PING 주기(초)입니다.
	HeartbeatInterval int `json:"heartbeat_interval,omitempty"`
	// MaxFramePayload 는 서버가 쓰는 프레임 payload 상한입니다. 클라이언트는
	// 이 값으로 자신의 디코더/인코더 상한을 맞춥니다. 0 이면 기본값입니다.
	MaxFramePayload uint32 `json:"max_frame_payload,omitempty"`
}

// ErrorInfo 는 ERROR 프레임의 payload 입니다. 스트림 프레임이면 해당 스트림,
// 제어 프레임(stream_id == 0)이면 세션 전체에 대한 에러입니다.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// OPEN/ERROR 에서 사용하는 에러 코드들.
const (
	ErrCodeAuthFailed   = "auth_failed"
	ErrCodeIdentityBusy = "identity_in_use"
	ErrCodeLocalConnect = "local_connect_failed"
	ErrCodeProtocol     = "protocol_error"
	// ErrCodeStreamReset 은 한쪽이 스트림을 완전히 포기했음을 알립니다.
	// 수신 측은 해당 스트림만 즉시 정리하며, 세션은 유지됩니다.
	ErrCodeStreamReset = "stream_reset"
)

// OpenRequest 는 OPEN 프레임의 payload 로, 공개 측 연결의 부가 정보를 담습니다.
type OpenRequest struct {
	RemoteAddr string `json:"remote_addr,omitempty"`
}

// MarshalControl 은 제어 payload 구조체를 JSON 으로 직렬화합니다.
func MarshalControl(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal control payload: %w", err)
	}
	return b, nil
}

// UnmarshalControl 은 제어 payload 를 구조체로 역직렬화합니다.
func UnmarshalControl(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal control payload: %w", err)
	}
	return nil
}

// WindowPayload 는 WINDOW_UPDATE 프레임의 크레딧 증가량을 인코딩합니다.
func WindowPayload(delta uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, delta)
	return b
}

// ParseWindowPayload 는 WINDOW_UPDATE payload 에서 크레딧 증가량을 읽습니다.
func ParseWindowPayload(p []byte) (uint32, error) {
	if len(p) != 4 {
		return 0, &MalformedError{Reason: fmt.Sprintf("window_update payload must be 4 bytes, got %d", len(p))}
	}
	delta := binary.BigEndian.Uint32(p)
	if delta == 0 {
		return 0, &MalformedError{Reason: "window_update credit must be positive"}
	}
	return delta, nil
}

// NormalizeIdentity 는 희망 subdomain 을 정규화합니다. 소문자/트리밍 후
// [a-z0-9-] 만 허용하며, 형식이 맞지 않으면 빈 문자열을 반환합니다.
func NormalizeIdentity(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > 63 {
		return ""
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return ""
		}
	}
	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return ""
	}
	return s
}
