package protocol

import (
	"errors"
	"fmt"
)

// FrameType 은 제어 채널 위에서 교환되는 프레임의 종류를 나타냅니다.
type FrameType uint8

const (
	// FrameOpen 은 새 논리 스트림의 생성을 알립니다. payload 는 JSON OpenRequest 입니다.
	FrameOpen FrameType = 0x01
	// FrameData 는 스트림의 데이터 바이트를 운반합니다.
	FrameData FrameType = 0x02
	// FrameWindowUpdate 는 수신 측이 소비한 만큼의 크레딧을 송신 측에 돌려줍니다.
	// payload 는 4바이트 big-endian 크레딧 증가량입니다.
	FrameWindowUpdate FrameType = 0x03
	// FrameClose 는 송신 방향의 종료(half-close)를 알립니다.
	FrameClose FrameType = 0x04
	// FramePing / FramePong 은 제어 채널 liveness 체크에 사용합니다.
	// payload 는 opaque 하며 PONG 은 그대로 echo 합니다.
	FramePing FrameType = 0x05
	FramePong FrameType = 0x06
	// FrameAuth 는 transport 수립 직후 클라이언트가 보내야 하는 첫 프레임입니다.
	FrameAuth FrameType = 0x07
	// FrameAuthAck 는 인증 성공과 할당된 public identity 를 전달합니다.
	FrameAuthAck FrameType = 0x08
	// FrameError 는 세션/스트림 수준 에러를 전달합니다.
	FrameError FrameType = 0x09
)

const (
	// HeaderSize 는 고정 헤더 크기입니다: type(1) + stream_id(4) + length(4).
	HeaderSize = 9

	// ControlStreamID 는 세션 수준(스트림에 속하지 않는) 프레임의 stream_id 입니다.
	ControlStreamID uint32 = 0

	// DefaultMaxPayload 는 협상되지 않았을 때의 프레임 payload 상한입니다.
	// hop-gate 의 DTLS 세션 주변에서 쓰던 64KiB reader 크기와 동일합니다.
	DefaultMaxPayload uint32 = 64 * 1024

	// DefaultInitialWindow 는 스트림당 초기 송신 윈도우(크레딧)입니다.
	DefaultInitialWindow uint32 = 256 * 1024
)

// Frame 은 제어 채널에서 교환되는 최소 프로토콜 단위입니다.
// 생성 이후 불변이며, 수신 측 multiplexer 가 정확히 한 번 소비합니다.
type Frame struct {
	Type     FrameType
	StreamID uint32
	Payload  []byte
}

// IsControl 은 세션 수준 프레임(stream_id == 0)인지 여부를 반환합니다.
func (f *Frame) IsControl() bool {
	return f.StreamID == ControlStreamID
}

// String 은 로그 필드용 짧은 타입 이름을 반환합니다.
func (t FrameType) String() string {
	switch t {
	case FrameOpen:
		return "open"
	case FrameData:
		return "data"
	case FrameWindowUpdate:
		return "window_update"
	case FrameClose:
		return "close"
	case FramePing:
		return "ping"
	case FramePong:
		return "pong"
	case FrameAuth:
		return "auth"
	case FrameAuthAck:
		return "auth_ack"
	case FrameError:
		return "error"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(t))
	}
}

func validFrameType(t FrameType) bool {
	return t >= FrameOpen && t <= FrameError
}

// ErrIncomplete 은 버퍼에 아직 완전한 프레임이 도착하지 않았음을 나타냅니다.
// 더 많은 바이트를 읽은 뒤 다시 시도해야 하며, 연결에는 치명적이지 않습니다.
var ErrIncomplete = errors.New("protocol: incomplete frame")

// MalformedError 는 복구 불가능한 프레이밍 위반을 나타냅니다.
// 프레임 경계를 다시 찾을 수 없으므로 해당 연결은 즉시 종료되어야 합니다.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "protocol: malformed frame: " + e.Reason
}

// IsMalformed 는 err 가 MalformedError 인지 확인합니다.
func IsMalformed(err error) bool {
	var me *MalformedError
	return errors.As(err, &me)
}
