package mux

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/protocol"
)

// ErrMuxClosed 는 이미 종료된 제어 채널에 대한 작업을 나타냅니다.
var ErrMuxClosed = errors.New("mux: control channel closed")

// Config 는 Muxer 동작 파라미터를 담습니다. 0 값은 기본값으로 대체됩니다.
type Config struct {
	MaxPayload    uint32 // 프레임 payload 상한 (기본 64KiB)
	InitialWindow uint32 // 스트림당 초기 송신/수신 윈도우 (기본 256KiB)
	Logger        logging.Logger
}

// Muxer 는 하나의 물리 연결 위에 여러 논리 스트림을 다중화/역다중화합니다.
// 서버와 클라이언트 양쪽에서 동일하게 사용합니다.
//
// 스트림 id 는 여는 쪽이 1부터 단조 증가로 할당합니다. 이 프로토콜에서는
// 서버만 스트림을 열기 때문에(공개 연결 1개 = 스트림 1개) 충돌이 없습니다.
//
// 세션 수준 프레임(PING/PONG/ERROR 등, stream_id == 0)은 Muxer 가 해석하지
// 않고 Control() 채널로 소유자(세션 루프)에게 순서대로 전달합니다.
type Muxer struct {
	conn net.Conn
	cfg  Config
	log  logging.Logger

	// maxPayload 는 프레임 payload 상한입니다. AUTH_ACK 협상으로 세션
	// 수립 후에 바뀔 수 있어, 디코드/인코드 양쪽에서 atomic 으로 읽습니다.
	maxPayload atomic.Uint32

	writeMu sync.Mutex
	dec     *protocol.Decoder

	mu      sync.Mutex
	streams map[uint32]*Stream
	nextID  uint32
	closed  bool
	errOnce error

	acceptCh  chan *Stream
	controlCh chan *protocol.Frame
	done      chan struct{}
	closeOnce sync.Once
}

// New 는 conn 위에서 동작하는 Muxer 를 생성합니다. 생성 후 소유자는
// 반드시 ReadLoop 을 고루틴 하나에서 돌려야 합니다.
func New(conn net.Conn, cfg Config) *Muxer {
	if cfg.MaxPayload == 0 {
		cfg.MaxPayload = protocol.DefaultMaxPayload
	}
	if cfg.InitialWindow == 0 {
		cfg.InitialWindow = protocol.DefaultInitialWindow
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewStdJSONLogger("mux")
	}
	m := &Muxer{
		conn:      conn,
		cfg:       cfg,
		log:       cfg.Logger,
		dec:       protocol.NewDecoder(conn, cfg.MaxPayload),
		streams:   make(map[uint32]*Stream),
		nextID:    1,
		acceptCh:  make(chan *Stream, 16),
		controlCh: make(chan *protocol.Frame, 16),
		done:      make(chan struct{}),
	}
	m.maxPayload.Store(cfg.MaxPayload)
	return m
}

// SetMaxPayload 는 프레임 payload 상한을 교체합니다. 클라이언트가
// AUTH_ACK 로 받은 서버 상한을 반영할 때 사용합니다. 0 은 무시합니다.
func (m *Muxer) SetMaxPayload(maxPayload uint32) {
	if maxPayload == 0 {
		return
	}
	m.maxPayload.Store(maxPayload)
	m.dec.SetMaxPayload(maxPayload)
}

// Done 은 제어 채널이 종료되면 닫히는 채널을 반환합니다.
func (m *Muxer) Done() <-chan struct{} { return m.done }

// Control 은 세션 수준 프레임이 순서대로 전달되는 채널을 반환합니다.
// 소유자는 ReadLoop 이 도는 동안 이 채널을 계속 소비해야 합니다.
func (m *Muxer) Control() <-chan *protocol.Frame { return m.controlCh }

// OpenStream 은 새 논리 스트림을 열고 상대에게 OPEN 을 보냅니다.
// remoteAddr 는 공개 연결의 원격 주소로, 진단용으로만 전달됩니다.
func (m *Muxer) OpenStream(remoteAddr string) (*Stream, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrMuxClosed
	}
	id := m.nextID
	m.nextID++
	s := newStream(m, id)
	m.streams[id] = s
	m.mu.Unlock()

	payload, err := protocol.MarshalControl(protocol.OpenRequest{RemoteAddr: remoteAddr})
	if err != nil {
		m.removeStream(id)
		return nil, err
	}
	if err := m.writeFrame(&protocol.Frame{Type: protocol.FrameOpen, StreamID: id, Payload: payload}); err != nil {
		m.removeStream(id)
		return nil, err
	}
	return s, nil
}

// Accept 는 상대가 연 스트림을 기다립니다.
func (m *Muxer) Accept() (*Stream, error) {
	select {
	case s := <-m.acceptCh:
		return s, nil
	case <-m.done:
		return nil, ErrMuxClosed
	}
}

// WriteControl 은 세션 수준 프레임(stream_id == 0)을 전송합니다.
func (m *Muxer) WriteControl(t protocol.FrameType, payload []byte) error {
	return m.writeFrame(&protocol.Frame{Type: t, StreamID: protocol.ControlStreamID, Payload: payload})
}

// WriteStreamError 는 특정 스트림에 대한 ERROR 프레임을 전송합니다.
// 상대는 해당 스트림만 닫으며, 세션은 계속 유지됩니다.
func (m *Muxer) WriteStreamError(id uint32, code, message string) error {
	payload, err := protocol.MarshalControl(protocol.ErrorInfo{Code: code, Message: message})
	if err != nil {
		return err
	}
	return m.writeFrame(&protocol.Frame{Type: protocol.FrameError, StreamID: id, Payload: payload})
}

// writeFrame 은 프레임 단위로 직렬화된 쓰기를 보장합니다.
func (m *Muxer) writeFrame(f *protocol.Frame) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	select {
	case <-m.done:
		return ErrMuxClosed
	default:
	}
	return protocol.Encode(m.conn, f, m.maxPayload.Load())
}

// ReadLoop 은 연결에서 프레임을 읽어 스트림/제어 채널로 분배합니다.
// 연결이 정상 종료되면 nil, MALFORMED 입력이나 I/O 에러면 해당 에러를
// 반환하며, 반환 시점에는 모든 스트림이 정리된 상태입니다.
func (m *Muxer) ReadLoop() error {
	var loopErr error
	for {
		f, err := m.dec.Decode()
		if err != nil {
			if err != io.EOF {
				loopErr = err
			}
			break
		}
		if err := m.dispatch(f); err != nil {
			loopErr = err
			break
		}
	}
	m.shutdown(loopErr)
	return loopErr
}

// dispatch 는 프레임 하나를 처리합니다. 반환 에러는 연결에 치명적입니다.
func (m *Muxer) dispatch(f *protocol.Frame) error {
	if f.IsControl() {
		if f.Type == protocol.FrameData || f.Type == protocol.FrameOpen {
			return &protocol.MalformedError{Reason: fmt.Sprintf("%s frame on control stream", f.Type)}
		}
		select {
		case m.controlCh <- f:
			return nil
		case <-m.done:
			return ErrMuxClosed
		}
	}

	switch f.Type {
	case protocol.FrameOpen:
		m.mu.Lock()
		if _, dup := m.streams[f.StreamID]; dup {
			m.mu.Unlock()
			return &protocol.MalformedError{Reason: fmt.Sprintf("duplicate OPEN for stream %d", f.StreamID)}
		}
		s := newStream(m, f.StreamID)
		m.streams[f.StreamID] = s
		m.mu.Unlock()
		select {
		case m.acceptCh <- s:
		case <-m.done:
			return ErrMuxClosed
		}

	case protocol.FrameData:
		s := m.lookup(f.StreamID)
		if s == nil || !s.deliver(f.Payload) {
			// 닫힌 직후 아직 날아오던 DATA 와의 경합일 수 있으므로
			// 치명적이지 않습니다. advisory 로만 남기고 버립니다.
			m.log.Debug("data for unknown or closed stream dropped", logging.Fields{
				"stream_id": f.StreamID,
				"bytes":     len(f.Payload),
			})
		}

	case protocol.FrameWindowUpdate:
		delta, err := protocol.ParseWindowPayload(f.Payload)
		if err != nil {
			return err
		}
		if s := m.lookup(f.StreamID); s != nil {
			s.addCredit(delta)
		}

	case protocol.FrameClose:
		if s := m.lookup(f.StreamID); s != nil {
			s.onRemoteClose()
		} else {
			m.log.Debug("close for unknown stream ignored", logging.Fields{
				"stream_id": f.StreamID,
			})
		}

	case protocol.FrameError:
		var info protocol.ErrorInfo
		_ = protocol.UnmarshalControl(f.Payload, &info)
		if s := m.lookup(f.StreamID); s != nil {
			m.log.Warn("peer reset stream", logging.Fields{
				"stream_id": f.StreamID,
				"code":      info.Code,
				"message":   info.Message,
			})
			s.reset(fmt.Errorf("mux: stream reset by peer: %s", info.Code))
			m.removeStream(f.StreamID)
		} else {
			m.log.Debug("error for unknown stream ignored", logging.Fields{
				"stream_id": f.StreamID,
			})
		}

	default:
		return &protocol.MalformedError{Reason: fmt.Sprintf("%s frame with nonzero stream id", f.Type)}
	}
	return nil
}

func (m *Muxer) lookup(id uint32) *Stream {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streams[id]
}

func (m *Muxer) removeStream(id uint32) {
	m.mu.Lock()
	delete(m.streams, id)
	m.mu.Unlock()
}

// NumStreams 는 현재 열려 있는 스트림 수를 반환합니다.
func (m *Muxer) NumStreams() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.streams)
}

// Close 는 제어 채널과 소속 스트림 전부를 종료합니다. 한 세션의 종료가
// 다른 세션에 영향을 주지 않도록, 이 Muxer 가 소유한 자원만 정리합니다.
func (m *Muxer) Close() error {
	m.shutdown(nil)
	return nil
}

func (m *Muxer) shutdown(err error) {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.errOnce = err
		streams := make([]*Stream, 0, len(m.streams))
		for _, s := range m.streams {
			streams = append(streams, s)
		}
		m.streams = make(map[uint32]*Stream)
		m.mu.Unlock()

		close(m.done)
		_ = m.conn.Close()
		tearErr := err
		if tearErr == nil {
			tearErr = ErrMuxClosed
		}
		for _, s := range streams {
			s.teardown(tearErr)
		}
	})
}
