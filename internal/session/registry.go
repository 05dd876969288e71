package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/observability"
	"github.com/dalbodeule/loco-gate/internal/protocol"
)

var (
	// ErrIdentityInUse 는 요청한 public identity 를 다른 라이브 세션이
	// 이미 점유하고 있음을 나타냅니다.
	ErrIdentityInUse = errors.New("session: identity already in use")

	// ErrInvalidIdentity 는 요청한 identity 가 subdomain 라벨 형식이 아님을 나타냅니다.
	ErrInvalidIdentity = errors.New("session: invalid identity")

	// ErrNotFound 는 public identity 에 대응하는 라이브 세션이 없음을 나타냅니다.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired 는 이미 만료/종료된 세션에 대한 heartbeat 을 나타냅니다.
	ErrExpired = errors.New("session: expired")
)

// Registry 는 활성 세션과 public identity 할당을 소유하는 서버 측
// 테이블입니다. Public Listener 와 만료 sweeper 가 핸들로 전달받아
// 사용하며, 모든 변경은 여기 정의된 연산을 통해서만 일어납니다.
//
// identity 예약과 세션 등록은 concurrent-map 의 SetIfAbsent 한 번으로
// 끝나는 원자 연산이라, 같은 identity 를 동시에 요청한 두 등록 중
// 정확히 하나만 성공합니다. 세션 간에는 공유 락이 없습니다.
type Registry struct {
	log     logging.Logger
	timeout time.Duration

	byIdentity cmap.ConcurrentMap[string, *Session]
	byID       cmap.ConcurrentMap[string, *Session]
}

// NewRegistry 는 주어진 heartbeat 만료 시간으로 Registry 를 생성합니다.
func NewRegistry(logger logging.Logger, timeout time.Duration) *Registry {
	if logger == nil {
		logger = logging.NewStdJSONLogger("session_registry")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Registry{
		log:        logger.With(logging.Fields{"component": "session_registry"}),
		timeout:    timeout,
		byIdentity: cmap.New[*Session](),
		byID:       cmap.New[*Session](),
	}
}

// Register 는 인증이 끝난 주체에 대해 세션을 만들고 public identity 를
// 할당합니다. requested 가 비어 있지 않고 사용 가능하면 그대로 부여하고,
// 아니면 임의의 미사용 식별자를 생성합니다.
func (r *Registry) Register(principal, requested string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Principal: principal,
		CreatedAt: now,
	}
	sess.state = StatePending
	sess.lastHeartbeat = now

	if requested != "" {
		identity := protocol.NormalizeIdentity(requested)
		if identity == "" {
			return nil, ErrInvalidIdentity
		}
		sess.Identity = identity
		if !r.byIdentity.SetIfAbsent(identity, sess) {
			observability.RegistrationsTotal.WithLabelValues("identity_in_use").Inc()
			return nil, ErrIdentityInUse
		}
	} else {
		// 랜덤 identity: uuid 앞 8자리. 충돌 시 재시도.
		for {
			identity := strings.SplitN(uuid.NewString(), "-", 2)[0]
			sess.Identity = identity
			if r.byIdentity.SetIfAbsent(identity, sess) {
				break
			}
		}
	}

	r.byID.Set(sess.ID, sess)
	observability.RegistrationsTotal.WithLabelValues("success").Inc()
	observability.SessionsActive.Inc()
	r.log.Info("session registered", logging.Fields{
		"session_id": sess.ID,
		"identity":   sess.Identity,
		"principal":  principal,
	})
	return sess, nil
}

// Lookup 은 public identity 로 ACTIVE 세션을 찾습니다.
func (r *Registry) Lookup(identity string) (*Session, error) {
	sess, ok := r.byIdentity.Get(identity)
	if !ok || sess.State() != StateActive {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Heartbeat 은 세션의 liveness 관측을 기록합니다.
func (r *Registry) Heartbeat(sessionID string) error {
	sess, ok := r.byID.Get(sessionID)
	if !ok {
		return ErrExpired
	}
	if !sess.heartbeat(time.Now()) {
		return ErrExpired
	}
	return nil
}

// Release 는 세션을 닫고 identity 를 free pool 로 돌려놓습니다. 멱등합니다.
func (r *Registry) Release(sessionID string) {
	sess, ok := r.byID.Pop(sessionID)
	if !ok {
		return
	}
	r.byIdentity.RemoveCb(sess.Identity, func(_ string, cur *Session, exists bool) bool {
		// 같은 identity 를 이미 다른 세션이 재사용 중이면 건드리지 않습니다.
		return exists && cur.ID == sess.ID
	})
	sess.close()
	observability.SessionsActive.Dec()
	r.log.Info("session released", logging.Fields{
		"session_id": sess.ID,
		"identity":   sess.Identity,
	})
}

// Sweep 은 timeout 을 넘긴 세션을 만료시키고, 만료된 세션 수를 반환합니다.
// 만료는 identity 해제와 소속 스트림 전부의 강제 종료를 포함합니다.
func (r *Registry) Sweep(now time.Time) int {
	expired := 0
	for entry := range r.byID.IterBuffered() {
		sess := entry.Val
		if sess.expired(now, r.timeout) {
			r.log.Warn("session expired by heartbeat timeout", logging.Fields{
				"session_id":     sess.ID,
				"identity":       sess.Identity,
				"last_heartbeat": sess.LastHeartbeat(),
			})
			observability.SessionExpiriesTotal.Inc()
			r.Release(sess.ID)
			expired++
		}
	}
	return expired
}

// Run 은 ctx 가 취소될 때까지 주기적으로 Sweep 을 수행합니다.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.timeout / 3
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

// Len 은 라이브 세션 수를 반환합니다.
func (r *Registry) Len() int {
	return r.byID.Count()
}

// Snapshots 는 관리 plane 노출용으로 모든 세션 요약을 반환합니다.
func (r *Registry) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, r.byID.Count())
	for entry := range r.byID.IterBuffered() {
		out = append(out, entry.Val.Snapshot())
	}
	return out
}

// CloseAll 은 종료 시 모든 세션을 정리합니다.
func (r *Registry) CloseAll() {
	for entry := range r.byID.IterBuffered() {
		r.Release(entry.Key)
	}
}
