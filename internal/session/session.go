package session

import (
	"sync"
	"time"

	"github.com/dalbodeule/loco-gate/internal/mux"
)

// State 는 세션의 생명주기 상태입니다.
type State string

const (
	StatePending  State = "pending"  // 인증 직후, mux 가 아직 붙지 않음
	StateActive   State = "active"   // 스트림을 받을 수 있음
	StateDraining State = "draining" // 새 스트림 거부, 기존 스트림은 마무리 중
	StateClosed   State = "closed"
)

// Session 은 인증된 클라이언트 하나를 나타냅니다. Registry 가 소유하며,
// 모든 변경은 Registry 의 연산 또는 세션 자신의 메서드를 통해서만 일어납니다.
//
// 스트림은 세션의 Muxer 가 소유하고, 스트림 쪽에서는 세션을 ID 로만
// 참조합니다(순환 참조 없음).
type Session struct {
	ID        string // 서버가 생성한 uuid
	Identity  string // 할당된 public identity (subdomain 라벨)
	Principal string // 인증 주체 (토큰 소유자 이름 또는 마스킹된 토큰)
	CreatedAt time.Time

	mu            sync.Mutex
	state         State
	lastHeartbeat time.Time
	m             *mux.Muxer

	totalStreams uint64
	bytesIn      uint64 // 공개 측 → 로컬 서비스 방향
	bytesOut     uint64 // 로컬 서비스 → 공개 측 방향
}

// State 는 현재 상태를 반환합니다.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastHeartbeat 은 마지막으로 관측된 liveness 시각을 반환합니다.
func (s *Session) LastHeartbeat() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeartbeat
}

// AttachMux 는 제어 채널 Muxer 를 붙이고 세션을 ACTIVE 로 전환합니다.
func (s *Session) AttachMux(m *mux.Muxer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = m
	s.state = StateActive
	s.lastHeartbeat = time.Now()
}

// OpenStream 은 이 세션의 제어 채널 위에 새 논리 스트림을 엽니다.
func (s *Session) OpenStream(remoteAddr string) (*mux.Stream, error) {
	s.mu.Lock()
	m := s.m
	state := s.state
	s.mu.Unlock()

	if m == nil || state != StateActive {
		return nil, ErrNotFound
	}
	st, err := m.OpenStream(remoteAddr)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.totalStreams++
	s.mu.Unlock()
	return st, nil
}

// AddTransfer 는 스트림 하나가 끝났을 때 전송량을 누적합니다.
func (s *Session) AddTransfer(in, out uint64) {
	s.mu.Lock()
	s.bytesIn += in
	s.bytesOut += out
	s.mu.Unlock()
}

// Snapshot 은 관리 plane 노출용 세션 요약입니다.
type Snapshot struct {
	ID            string    `json:"id"`
	Identity      string    `json:"identity"`
	Principal     string    `json:"principal"`
	State         State     `json:"state"`
	CreatedAt     time.Time `json:"created_at"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
	ActiveStreams int       `json:"active_streams"`
	TotalStreams  uint64    `json:"total_streams"`
	BytesIn       uint64    `json:"bytes_in"`
	BytesOut      uint64    `json:"bytes_out"`
}

// Snapshot 은 현재 세션 상태의 복사본을 반환합니다.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:            s.ID,
		Identity:      s.Identity,
		Principal:     s.Principal,
		State:         s.state,
		CreatedAt:     s.CreatedAt,
		LastHeartbeat: s.lastHeartbeat,
		TotalStreams:  s.totalStreams,
		BytesIn:       s.bytesIn,
		BytesOut:      s.bytesOut,
	}
	if s.m != nil {
		snap.ActiveStreams = s.m.NumStreams()
	}
	return snap
}

// heartbeat 은 liveness 관측을 기록합니다. CLOSED 세션이면 false 입니다.
func (s *Session) heartbeat(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return false
	}
	s.lastHeartbeat = now
	return true
}

// expired 는 timeout 동안 heartbeat 이 없었는지 검사합니다.
func (s *Session) expired(now time.Time, timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return false
	}
	return now.Sub(s.lastHeartbeat) > timeout
}

// close 는 제어 채널(및 소속 스트림 전부)을 먼저 정리한 뒤 세션을
// CLOSED 로 전환합니다. 모든 스트림이 닫히기 전에는 CLOSED 가 되지
// 않습니다. 멱등합니다.
func (s *Session) close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateDraining
	m := s.m
	s.mu.Unlock()

	if m != nil {
		_ = m.Close()
	}

	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()
}
