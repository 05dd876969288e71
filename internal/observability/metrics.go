package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 전역 레지스트리에 등록할 loco-gate 메트릭들을 정의합니다.
// Prometheus 기본 네임스페이스를 사용하며, 메트릭 이름에 locogate_ 접두어를 붙입니다.

var (
	// 클라이언트 등록 시도 수 (결과 라벨 포함).
	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locogate_registrations_total",
			Help: "Total number of tunnel client registrations, labeled by result.",
		},
		[]string{"result"}, // success, auth_failed, identity_in_use
	)

	// 현재 활성 세션 수.
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "locogate_sessions_active",
			Help: "Number of currently registered tunnel sessions.",
		},
	)

	// heartbeat 타임아웃으로 만료된 세션 수.
	SessionExpiriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "locogate_session_expiries_total",
			Help: "Total number of sessions expired by heartbeat timeout.",
		},
	)

	// 열린 논리 스트림 수 (누적).
	StreamsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "locogate_streams_total",
			Help: "Total number of logical streams opened over all sessions.",
		},
	)

	// 공개 연결과 로컬 서비스 사이에 중계된 바이트 수 (방향 라벨 포함).
	RelayBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locogate_relay_bytes_total",
			Help: "Total bytes relayed through tunnels, labeled by direction.",
		},
		[]string{"direction"}, // to_local, to_public
	)

	// 공개 연결 거절 수 (이유 라벨 포함).
	PublicRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locogate_public_rejections_total",
			Help: "Total number of rejected public connections, labeled by reason.",
		},
		[]string{"reason"}, // no_session, bad_request, stream_open_failed
	)

	// 제어 채널 프레임 디코드 에러 수.
	FrameDecodeErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "locogate_frame_decode_errors_total",
			Help: "Total number of fatal frame decode errors on control channels.",
		},
	)
)

// MustRegister 는 위에서 정의한 메트릭들을 전역 Prometheus 레지스트리에 등록합니다.
// 서버 시작 시 한 번만 호출해야 합니다.
func MustRegister() {
	prometheus.MustRegister(
		RegistrationsTotal,
		SessionsActive,
		SessionExpiriesTotal,
		StreamsTotal,
		RelayBytesTotal,
		PublicRejectionsTotal,
		FrameDecodeErrorsTotal,
	)
}
