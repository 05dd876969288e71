package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
)

// Encode 는 프레임을 고정 헤더 + payload 형태로 직렬화해 w 에 기록합니다.
// 프레임 전체를 하나의 버퍼로 만들어 단일 Write 로 내보내므로,
// 동시에 쓰는 쪽에서 write lock 만 잡으면 프레임이 섞이지 않습니다.
func Encode(w io.Writer, f *Frame, maxPayload uint32) error {
	if !validFrameType(f.Type) {
		return &MalformedError{Reason: fmt.Sprintf("unknown frame type 0x%02x", uint8(f.Type))}
	}
	if maxPayload == 0 {
		maxPayload = DefaultMaxPayload
	}
	if uint32(len(f.Payload)) > maxPayload {
		return &MalformedError{Reason: fmt.Sprintf("payload %d exceeds max %d", len(f.Payload), maxPayload)}
	}

	buf := make([]byte, HeaderSize+len(f.Payload))
	buf[0] = byte(f.Type)
	binary.BigEndian.PutUint32(buf[1:5], f.StreamID)
	binary.BigEndian.PutUint32(buf[5:9], uint32(len(f.Payload)))
	copy(buf[HeaderSize:], f.Payload)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Parse 는 buf 앞부분에서 프레임 하나를 디코딩합니다.
//
// 반환값:
//   - (frame, consumed, nil)        : 완전한 프레임 하나를 읽음
//   - (nil, 0, ErrIncomplete)       : 바이트가 더 필요함 (buf 는 그대로 유지)
//   - (nil, 0, *MalformedError)     : 프레임 경계 복구 불가, 연결 종료 필요
//
// 잘린 입력에서 절대 잘못된 프레임을 만들지 않습니다. payload 는 복사되므로
// 호출자가 buf 를 재사용해도 안전합니다.
func Parse(buf []byte, maxPayload uint32) (*Frame, int, error) {
	if maxPayload == 0 {
		maxPayload = DefaultMaxPayload
	}
	if len(buf) < HeaderSize {
		return nil, 0, ErrIncomplete
	}

	t := FrameType(buf[0])
	if !validFrameType(t) {
		return nil, 0, &MalformedError{Reason: fmt.Sprintf("unknown frame type 0x%02x", buf[0])}
	}
	length := binary.BigEndian.Uint32(buf[5:9])
	if length > maxPayload {
		return nil, 0, &MalformedError{Reason: fmt.Sprintf("declared payload %d exceeds max %d", length, maxPayload)}
	}
	total := HeaderSize + int(length)
	if len(buf) < total {
		return nil, 0, ErrIncomplete
	}

	f := &Frame{
		Type:     t,
		StreamID: binary.BigEndian.Uint32(buf[1:5]),
	}
	if length > 0 {
		f.Payload = make([]byte, length)
		copy(f.Payload, buf[HeaderSize:total])
	}
	return f, total, nil
}

// Decoder 는 io.Reader 위에서 프레임 단위 스트리밍 파서를 제공합니다.
// partial read 에 대해 재개 가능하며, 한 번의 Read 로 프레임 전체가
// 도착한다는 가정을 하지 않습니다.
type Decoder struct {
	r          io.Reader
	maxPayload atomic.Uint32
	buf        []byte // 누적 버퍼; [start:end) 가 유효 구간
	start, end int
}

// NewDecoder 는 r 에서 프레임을 읽는 Decoder 를 생성합니다.
// maxPayload 가 0 이면 DefaultMaxPayload 를 사용합니다.
func NewDecoder(r io.Reader, maxPayload uint32) *Decoder {
	if maxPayload == 0 {
		maxPayload = DefaultMaxPayload
	}
	d := &Decoder{
		r:   r,
		buf: make([]byte, 0, HeaderSize+int(maxPayload)),
	}
	d.maxPayload.Store(maxPayload)
	return d
}

// SetMaxPayload 는 payload 상한을 교체합니다. AUTH_ACK 로 협상된 값을
// 반영할 때 사용하며, 디코드 루프가 도는 중에도 안전합니다.
func (d *Decoder) SetMaxPayload(maxPayload uint32) {
	if maxPayload == 0 {
		return
	}
	d.maxPayload.Store(maxPayload)
}

// Decode 는 완전한 프레임 하나가 모일 때까지 읽어 반환합니다.
//
// 프레임 경계에서 EOF 를 만나면 io.EOF 를, 프레임 중간에서 끊기면
// ErrIncomplete 을 반환합니다. MalformedError 는 그대로 전파되며,
// 그 이후의 Decode 호출 결과는 정의되지 않습니다.
func (d *Decoder) Decode() (*Frame, error) {
	for {
		f, n, err := Parse(d.buf[d.start:d.end], d.maxPayload.Load())
		if err == nil {
			d.start += n
			if d.start == d.end {
				d.start, d.end = 0, 0
			}
			return f, nil
		}
		if err != ErrIncomplete {
			return nil, err
		}

		if err := d.fill(); err != nil {
			if err == io.EOF {
				if d.end > d.start {
					// 헤더 또는 payload 중간에서 끊김
					return nil, ErrIncomplete
				}
				return nil, io.EOF
			}
			return nil, err
		}
	}
}

// fill 은 내부 버퍼에 최소 1바이트 이상을 추가로 읽어들입니다.
func (d *Decoder) fill() error {
	// 남은 구간을 앞으로 밀어 공간 확보
	if d.start > 0 {
		copy(d.buf[:cap(d.buf)], d.buf[d.start:d.end])
		d.end -= d.start
		d.start = 0
	}
	if d.end == cap(d.buf) {
		// SetMaxPayload 로 상한이 올라가면 초기 용량보다 큰 프레임이
		// 들어올 수 있으므로 버퍼를 두 배로 키웁니다.
		grown := make([]byte, d.end, cap(d.buf)*2)
		copy(grown, d.buf[:d.end])
		d.buf = grown
	}

	n, err := d.r.Read(d.buf[d.end:cap(d.buf)])
	if n > 0 {
		d.buf = d.buf[:cap(d.buf)]
		d.end += n
		d.buf = d.buf[:d.end]
		return nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return err
}
