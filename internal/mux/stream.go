package mux

import (
	"errors"
	"io"
	"sync"

	"github.com/eapache/queue"

	"github.com/dalbodeule/loco-gate/internal/protocol"
)

// StreamState 는 스트림의 생명주기 상태입니다.
type StreamState string

const (
	StreamOpening          StreamState = "opening"
	StreamOpen             StreamState = "open"
	StreamHalfClosedLocal  StreamState = "half_closed_local"
	StreamHalfClosedRemote StreamState = "half_closed_remote"
	StreamClosed           StreamState = "closed"
)

// ErrWriteClosed 는 이미 half-close 된 송신 방향으로 Write 를 시도했음을 나타냅니다.
var ErrWriteClosed = errors.New("mux: stream closed for writing")

// Stream 은 하나의 제어 채널 위에 다중화된 논리 양방향 바이트 파이프입니다.
//
// 수신 경로는 read loop 과 분리된 순서 보존 큐로 동작합니다: Muxer 의
// read loop 이 DATA chunk 를 큐에 넣고, 소비자는 Read 로 꺼냅니다.
// 소비자가 느려도 read loop 은 막히지 않으며, 큐에 쌓일 수 있는 양은
// 우리가 상대에게 준 크레딧(수신 윈도우)으로 제한됩니다.
//
// 송신 경로는 크레딧 기반 flow control 을 따릅니다: sendWindow 가 0 이 되면
// Write 는 상대의 WINDOW_UPDATE 로 크레딧이 회복될 때까지 대기합니다.
type Stream struct {
	id  uint32
	mux *Muxer

	mu   sync.Mutex
	cond *sync.Cond

	recvQ      *queue.Queue // of []byte
	leftover   []byte       // 읽다 만 chunk
	consumed   uint32       // 마지막 크레딧 지급 이후 소비한 바이트
	recvWindow uint32       // 상대에게 광고한 윈도우
	sendWindow uint32       // 남은 송신 크레딧

	localClosed  bool // 우리가 CLOSE 를 보냄
	remoteClosed bool // 상대가 CLOSE 를 보냄
	torn         bool // 세션 자체가 죽음
	tornErr      error
}

func newStream(m *Muxer, id uint32) *Stream {
	s := &Stream{
		id:         id,
		mux:        m,
		recvQ:      queue.New(),
		recvWindow: m.cfg.InitialWindow,
		sendWindow: m.cfg.InitialWindow,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// ID 는 세션 내에서 유일하며 재사용되지 않는 스트림 식별자를 반환합니다.
func (s *Stream) ID() uint32 { return s.id }

// State 는 현재 스트림 상태를 반환합니다.
func (s *Stream) State() StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.localClosed && s.remoteClosed:
		return StreamClosed
	case s.localClosed:
		return StreamHalfClosedLocal
	case s.remoteClosed:
		return StreamHalfClosedRemote
	default:
		return StreamOpen
	}
}

// Read 는 수신 큐에서 바이트를 순서대로 꺼냅니다. 큐가 비고 상대가
// CLOSE 를 보냈으면 io.EOF 를 반환합니다. 소비량이 윈도우의 절반에
// 도달할 때마다 그만큼의 크레딧을 WINDOW_UPDATE 로 돌려줍니다.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	var n int
	for {
		if len(s.leftover) > 0 {
			n = copy(p, s.leftover)
			s.leftover = s.leftover[n:]
			break
		}
		if s.recvQ.Length() > 0 {
			s.leftover = s.recvQ.Remove().([]byte)
			continue
		}
		if s.remoteClosed {
			s.mu.Unlock()
			return 0, io.EOF
		}
		if s.torn {
			err := s.tornErr
			s.mu.Unlock()
			if err == nil {
				err = io.ErrClosedPipe
			}
			return 0, err
		}
		s.cond.Wait()
	}

	s.consumed += uint32(n)
	var grant uint32
	if s.consumed >= s.recvWindow/2 {
		grant = s.consumed
		s.consumed = 0
	}
	s.mu.Unlock()

	// 크레딧 지급은 lock 밖에서 수행합니다. 전송이 실패하면 세션이
	// 곧 죽으므로 여기서는 읽은 데이터만 정상적으로 돌려줍니다.
	if grant > 0 {
		_ = s.mux.writeFrame(&protocol.Frame{
			Type:     protocol.FrameWindowUpdate,
			StreamID: s.id,
			Payload:  protocol.WindowPayload(grant),
		})
	}
	return n, nil
}

// Write 는 p 를 최대 payload 크기 이하의 DATA 프레임들로 잘라 보냅니다.
// 남은 송신 크레딧이 0 이면 WINDOW_UPDATE 가 도착할 때까지 대기하므로,
// 미확인 전송 바이트 합계는 상대가 광고한 윈도우를 절대 넘지 않습니다.
func (s *Stream) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		s.mu.Lock()
		for s.sendWindow == 0 && !s.localClosed && !s.torn {
			s.cond.Wait()
		}
		if s.localClosed {
			s.mu.Unlock()
			return total, ErrWriteClosed
		}
		if s.torn {
			err := s.tornErr
			s.mu.Unlock()
			if err == nil {
				err = io.ErrClosedPipe
			}
			return total, err
		}
		take := s.sendWindow
		if mp := s.mux.maxPayload.Load(); take > mp {
			take = mp
		}
		if int(take) > len(p) {
			take = uint32(len(p))
		}
		s.sendWindow -= take
		s.mu.Unlock()

		if err := s.mux.writeFrame(&protocol.Frame{
			Type:     protocol.FrameData,
			StreamID: s.id,
			Payload:  p[:take],
		}); err != nil {
			return total, err
		}
		total += int(take)
		p = p[take:]
	}
	return total, nil
}

// CloseWrite 는 송신 방향만 닫습니다(half-close). 상대는 CLOSE 를 받은 뒤
// 수신 큐를 모두 소비하고 io.EOF 를 보게 되며, 반대 방향은 계속 흐릅니다.
func (s *Stream) CloseWrite() error {
	s.mu.Lock()
	if s.localClosed {
		s.mu.Unlock()
		return nil
	}
	s.localClosed = true
	finished := s.remoteClosed
	s.cond.Broadcast()
	s.mu.Unlock()

	err := s.mux.writeFrame(&protocol.Frame{
		Type:     protocol.FrameClose,
		StreamID: s.id,
	})
	if finished {
		s.mux.removeStream(s.id)
	}
	return err
}

// CloseWithError 는 양방향 모두를 닫고, 상대가 아직 살아 있으면 주어진
// 코드의 ERROR 프레임으로 reset 을 알립니다. 상대 쪽에서 이 스트림의
// 크레딧을 기다리며 블록돼 있던 송신자는 즉시 에러로 깨어납니다.
func (s *Stream) CloseWithError(code, message string) error {
	err := s.CloseWrite()

	s.mu.Lock()
	already := s.remoteClosed
	s.remoteClosed = true
	s.leftover = nil
	s.recvQ = queue.New()
	s.cond.Broadcast()
	s.mu.Unlock()

	if !already {
		_ = s.mux.WriteStreamError(s.id, code, message)
		s.mux.removeStream(s.id)
	}
	return err
}

// Close 는 양방향 모두를 닫습니다. 이후 도착하는 DATA 는 닫힌 직후의
// 경합으로 간주되어 advisory 로그와 함께 버려집니다.
func (s *Stream) Close() error {
	return s.CloseWithError(protocol.ErrCodeStreamReset, "stream closed")
}

// deliver 는 read loop 이 DATA chunk 를 수신 큐에 넣을 때 호출합니다.
// 이미 닫힌 스트림이면 false 를 반환하고 chunk 는 버려집니다.
func (s *Stream) deliver(b []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remoteClosed || s.torn {
		return false
	}
	s.recvQ.Add(b)
	s.cond.Broadcast()
	return true
}

// onRemoteClose 는 상대의 CLOSE 수신을 처리합니다.
func (s *Stream) onRemoteClose() {
	s.mu.Lock()
	if s.remoteClosed {
		s.mu.Unlock()
		return
	}
	s.remoteClosed = true
	finished := s.localClosed
	s.cond.Broadcast()
	s.mu.Unlock()

	if finished {
		s.mux.removeStream(s.id)
	}
}

// reset 은 상대의 스트림 ERROR 수신을 처리합니다. 수신 큐를 버리고,
// 크레딧을 기다리던 송신자를 에러로 깨웁니다. 세션의 다른 스트림에는
// 영향을 주지 않습니다.
func (s *Stream) reset(err error) {
	s.mu.Lock()
	s.remoteClosed = true
	s.torn = true
	s.tornErr = err
	s.leftover = nil
	s.recvQ = queue.New()
	s.cond.Broadcast()
	s.mu.Unlock()
}

// addCredit 은 WINDOW_UPDATE 수신으로 송신 크레딧을 회복시킵니다.
func (s *Stream) addCredit(delta uint32) {
	s.mu.Lock()
	s.sendWindow += delta
	s.cond.Broadcast()
	s.mu.Unlock()
}

// teardown 은 세션(제어 채널) 전체가 죽었을 때 호출됩니다. 블록된
// Read/Write 를 모두 깨워 에러로 반환시킵니다.
func (s *Stream) teardown(err error) {
	s.mu.Lock()
	s.torn = true
	s.tornErr = err
	s.cond.Broadcast()
	s.mu.Unlock()
}
