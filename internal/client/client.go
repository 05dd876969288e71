// Package client 는 로컬 서비스를 릴레이 서버에 노출하는 터널
// 클라이언트를 구현합니다. 제어 채널 수립과 인증, heartbeat, 스트림
// 수락과 로컬 포워딩, 끊김 시 재접속까지를 담당합니다.
package client

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/jpillora/backoff"

	"github.com/dalbodeule/loco-gate/internal/config"
	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/mux"
	"github.com/dalbodeule/loco-gate/internal/protocol"
	"github.com/dalbodeule/loco-gate/internal/transport"
)

var (
	// ErrAuthRejected 는 서버가 토큰을 거부했음을 나타냅니다. 재시도해도
	// 결과가 달라지지 않으므로 클라이언트는 이 에러로 종료해야 합니다.
	ErrAuthRejected = errors.New("client: authentication rejected")

	// ErrHeartbeatTimeout 은 PONG 이 제한 시간 안에 오지 않았음을 나타냅니다.
	ErrHeartbeatTimeout = errors.New("client: heartbeat timeout")
)

// Client 는 터널 클라이언트 하나의 수명을 관리합니다.
type Client struct {
	cfg    *config.ClientConfig
	log    logging.Logger
	dialer transport.Dialer
}

// New 는 설정에 따라 transport 를 고릅니다. ServerURL 이 있으면
// WebSocket, 없으면 TLS/TCP 로 제어 채널을 수립합니다.
func New(cfg *config.ClientConfig, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewStdJSONLogger("tunnel_client")
	}
	var dialer transport.Dialer
	if cfg.ServerURL != "" {
		dialer = &transport.WSDialer{
			URL:                cfg.ServerURL,
			Timeout:            cfg.ConnectTimeout,
			InsecureSkipVerify: cfg.Debug,
		}
	} else {
		dialer = &transport.TLSDialer{
			Addr:               cfg.ServerAddr,
			Timeout:            cfg.ConnectTimeout,
			InsecureSkipVerify: cfg.Debug,
		}
	}
	return &Client{
		cfg:    cfg,
		log:    logger.With(logging.Fields{"component": "tunnel_client"}),
		dialer: dialer,
	}
}

// Run 은 ctx 가 취소될 때까지 제어 채널을 유지합니다. 연결이 죽으면
// 모든 스트림 상태를 버리고, jitter 가 섞인 지수 backoff 로 재접속해
// 같은 identity 를 다시 요청합니다. 인증 거부는 fatal 이며 그대로
// 반환합니다.
func (c *Client) Run(ctx context.Context) error {
	b := &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    c.cfg.MaxRetryInterval,
		Jitter: true,
	}

	for {
		err := c.runSession(ctx, b)
		if errors.Is(err, ErrAuthRejected) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		delay := b.Duration()
		fields := logging.Fields{"retry_in": delay.String()}
		if err != nil {
			fields["error"] = err.Error()
		}
		c.log.Warn("control channel lost, reconnecting", fields)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runSession 은 연결 수립부터 종료까지 세션 하나를 돌립니다. 성공적으로
// 인증이 끝나면 backoff 를 리셋합니다.
func (c *Client) runSession(ctx context.Context, b *backoff.Backoff) error {
	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	conn, err := c.dialer.Dial(dialCtx)
	cancel()
	if err != nil {
		return err
	}

	m := mux.New(conn, mux.Config{Logger: c.log})
	go func() {
		if err := m.ReadLoop(); err != nil {
			c.log.Warn("control channel read loop ended", logging.Fields{"error": err.Error()})
		}
	}()
	defer m.Close()

	ack, err := c.authenticate(ctx, m)
	if err != nil {
		return err
	}
	b.Reset()

	// 서버가 알려준 프레임 상한으로 양방향 코덱을 맞춥니다. 서버 쪽
	// 상한이 기본값보다 크면 이 값 없이는 수신 프레임이 MALFORMED 로
	// 오판되어 세션이 끊어집니다.
	m.SetMaxPayload(ack.MaxFramePayload)

	interval := c.cfg.HeartbeatInterval
	if ack.HeartbeatInterval > 0 {
		interval = time.Duration(ack.HeartbeatInterval) * time.Second
	}
	log := c.log.With(logging.Fields{
		"session_id": ack.SessionID,
		"identity":   ack.Identity,
	})
	log.Info("tunnel established", logging.Fields{
		"local_target":       c.cfg.LocalTarget,
		"heartbeat_interval": interval.String(),
	})

	// 서버가 여는 스트림을 받아 로컬 타깃으로 이어줍니다.
	go func() {
		for {
			st, err := m.Accept()
			if err != nil {
				return
			}
			go c.forward(st, log)
		}
	}()

	return c.heartbeatLoop(ctx, m, interval, log)
}

// authenticate 는 AUTH 를 보내고 AUTH_ACK 또는 ERROR 를 기다립니다.
func (c *Client) authenticate(ctx context.Context, m *mux.Muxer) (*protocol.AuthAck, error) {
	payload, err := protocol.MarshalControl(protocol.AuthRequest{
		Token:     c.cfg.AuthToken,
		Subdomain: c.cfg.Subdomain,
	})
	if err != nil {
		return nil, err
	}
	if err := m.WriteControl(protocol.FrameAuth, payload); err != nil {
		return nil, err
	}

	timer := time.NewTimer(c.cfg.ConnectTimeout)
	defer timer.Stop()

	select {
	case f := <-m.Control():
		switch f.Type {
		case protocol.FrameAuthAck:
			var ack protocol.AuthAck
			if err := protocol.UnmarshalControl(f.Payload, &ack); err != nil {
				return nil, err
			}
			return &ack, nil
		case protocol.FrameError:
			var info protocol.ErrorInfo
			_ = protocol.UnmarshalControl(f.Payload, &info)
			if info.Code == protocol.ErrCodeAuthFailed {
				return nil, fmt.Errorf("%w: %s", ErrAuthRejected, info.Message)
			}
			return nil, fmt.Errorf("client: registration rejected: %s (%s)", info.Code, info.Message)
		default:
			return nil, fmt.Errorf("client: unexpected frame %s during handshake", f.Type)
		}
	case <-timer.C:
		return nil, errors.New("client: auth handshake timed out")
	case <-m.Done():
		return nil, mux.ErrMuxClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// heartbeatLoop 은 고정 주기로 PING 을 보내고 PONG 수신 시각을
// 추적합니다. PongTimeout 을 넘기면 제어 연결을 포기하고 반환해
// 재접속을 유도합니다.
func (c *Client) heartbeatLoop(ctx context.Context, m *mux.Muxer, interval time.Duration, log logging.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastPong := time.Now()
	var seq uint64

	for {
		select {
		case <-ticker.C:
			if time.Since(lastPong) > c.cfg.PongTimeout {
				log.Warn("heartbeat timeout", logging.Fields{
					"last_pong": lastPong,
					"timeout":   c.cfg.PongTimeout.String(),
				})
				return ErrHeartbeatTimeout
			}
			seq++
			payload := make([]byte, 8)
			binary.BigEndian.PutUint64(payload, seq)
			if err := m.WriteControl(protocol.FramePing, payload); err != nil {
				return err
			}

		case f := <-m.Control():
			switch f.Type {
			case protocol.FramePong:
				lastPong = time.Now()
			case protocol.FramePing:
				// 서버는 PING 을 보내지 않지만, 대칭성을 위해 응답은 해 둡니다.
				if err := m.WriteControl(protocol.FramePong, f.Payload); err != nil {
					return err
				}
			case protocol.FrameError:
				var info protocol.ErrorInfo
				_ = protocol.UnmarshalControl(f.Payload, &info)
				return fmt.Errorf("client: session error from server: %s (%s)", info.Code, info.Message)
			default:
				return fmt.Errorf("client: unexpected control frame %s", f.Type)
			}

		case <-m.Done():
			return nil

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
