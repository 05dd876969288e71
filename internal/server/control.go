// Package server 는 릴레이 서버의 두 외부 표면을 구현합니다:
// 클라이언트가 붙는 제어 채널 리스너와, 인터넷 트래픽이 들어오는
// 공개 리스너입니다.
package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/dalbodeule/loco-gate/internal/auth"
	"github.com/dalbodeule/loco-gate/internal/config"
	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/mux"
	"github.com/dalbodeule/loco-gate/internal/observability"
	"github.com/dalbodeule/loco-gate/internal/protocol"
	"github.com/dalbodeule/loco-gate/internal/session"
	"github.com/dalbodeule/loco-gate/internal/transport"
)

// ControlServer 는 제어 채널 연결을 받아 인증하고, 세션을 등록한 뒤
// 세션 수준 프레임(PING/PONG/ERROR)을 처리합니다.
//
// 연결 하나가 세션 하나입니다. 한 연결의 실패는 그 세션만 정리하며,
// 리스너와 다른 세션에는 영향을 주지 않습니다.
type ControlServer struct {
	cfg       *config.ServerConfig
	log       logging.Logger
	validator auth.TokenValidator
	registry  *session.Registry

	wg sync.WaitGroup
}

// NewControlServer 는 제어 채널 서버를 생성합니다.
func NewControlServer(cfg *config.ServerConfig, logger logging.Logger, validator auth.TokenValidator, registry *session.Registry) *ControlServer {
	if logger == nil {
		logger = logging.NewStdJSONLogger("control_server")
	}
	return &ControlServer{
		cfg:       cfg,
		log:       logger.With(logging.Fields{"component": "control_server"}),
		validator: validator,
		registry:  registry,
	}
}

// Serve 는 ln 에서 제어 채널 연결을 받습니다. ctx 취소 또는 리스너
// 종료 시 반환하며, 반환 전에 진행 중인 핸들러를 기다립니다.
func (s *ControlServer) Serve(ctx context.Context, ln transport.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			s.log.Warn("control accept failed", logging.Fields{"error": err.Error()})
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// handleConn 은 연결 하나의 전체 수명을 담당합니다: AUTH 핸드셰이크,
// 세션 등록, 세션 수준 프레임 루프, 종료 시 세션 해제.
func (s *ControlServer) handleConn(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	log := s.log.With(logging.Fields{"remote": remote})

	m := mux.New(conn, mux.Config{
		MaxPayload: s.cfg.MaxFramePayload,
		Logger:     log,
	})
	go func() {
		if err := m.ReadLoop(); err != nil {
			if protocol.IsMalformed(err) {
				observability.FrameDecodeErrorsTotal.Inc()
			}
			log.Warn("control channel read loop ended", logging.Fields{"error": err.Error()})
		}
	}()

	sess, err := s.handshake(ctx, m, log)
	if err != nil {
		_ = m.Close()
		return
	}
	log = log.With(logging.Fields{
		"session_id": sess.ID,
		"identity":   sess.Identity,
	})
	defer s.registry.Release(sess.ID)

	s.sessionLoop(ctx, m, sess, log)
}

// handshake 는 첫 프레임이 AUTH 인지 검사하고 토큰을 검증한 뒤 세션을
// 등록합니다. 실패 시 상대에게 ERROR 프레임으로 사유를 알립니다.
func (s *ControlServer) handshake(ctx context.Context, m *mux.Muxer, log logging.Logger) (*session.Session, error) {
	authTimer := time.NewTimer(s.cfg.AuthTimeout)
	defer authTimer.Stop()

	var first *protocol.Frame
	select {
	case first = <-m.Control():
	case <-authTimer.C:
		log.Warn("auth handshake timed out", nil)
		s.sendError(m, protocol.ErrCodeProtocol, "auth timeout")
		return nil, errors.New("auth timeout")
	case <-m.Done():
		return nil, mux.ErrMuxClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if first.Type != protocol.FrameAuth {
		log.Warn("first frame is not AUTH", logging.Fields{"type": first.Type.String()})
		s.sendError(m, protocol.ErrCodeProtocol, "first frame must be AUTH")
		return nil, errors.New("first frame not AUTH")
	}

	var req protocol.AuthRequest
	if err := protocol.UnmarshalControl(first.Payload, &req); err != nil {
		s.sendError(m, protocol.ErrCodeProtocol, "bad AUTH payload")
		return nil, err
	}

	principal, err := s.validator.ValidateToken(ctx, req.Token)
	if err != nil {
		observability.RegistrationsTotal.WithLabelValues("auth_failed").Inc()
		log.Warn("authentication rejected", logging.Fields{
			"token": auth.MaskToken(req.Token),
			"error": err.Error(),
		})
		s.sendError(m, protocol.ErrCodeAuthFailed, "invalid token")
		return nil, err
	}

	sess, err := s.registry.Register(principal, req.Subdomain)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrIdentityInUse):
			s.sendError(m, protocol.ErrCodeIdentityBusy, "identity already in use")
		case errors.Is(err, session.ErrInvalidIdentity):
			s.sendError(m, protocol.ErrCodeProtocol, "invalid subdomain")
		default:
			s.sendError(m, protocol.ErrCodeProtocol, "registration failed")
		}
		return nil, err
	}

	sess.AttachMux(m)

	ack, err := protocol.MarshalControl(protocol.AuthAck{
		SessionID:         sess.ID,
		Identity:          sess.Identity,
		HeartbeatInterval: int(s.cfg.HeartbeatInterval / time.Second),
		MaxFramePayload:   s.cfg.MaxFramePayload,
	})
	if err != nil {
		s.registry.Release(sess.ID)
		return nil, err
	}
	if err := m.WriteControl(protocol.FrameAuthAck, ack); err != nil {
		s.registry.Release(sess.ID)
		return nil, err
	}
	return sess, nil
}

// sessionLoop 은 인증된 세션의 제어 프레임을 처리합니다. PING 은
// heartbeat 으로 기록하고 같은 payload 의 PONG 으로 응답합니다.
func (s *ControlServer) sessionLoop(ctx context.Context, m *mux.Muxer, sess *session.Session, log logging.Logger) {
	for {
		select {
		case f := <-m.Control():
			switch f.Type {
			case protocol.FramePing:
				if err := s.registry.Heartbeat(sess.ID); err != nil {
					log.Warn("heartbeat for dead session", logging.Fields{"error": err.Error()})
					return
				}
				if err := m.WriteControl(protocol.FramePong, f.Payload); err != nil {
					log.Warn("pong write failed", logging.Fields{"error": err.Error()})
					return
				}
			case protocol.FramePong:
				// 서버는 PING 을 보내지 않으므로 무시합니다.
			case protocol.FrameError:
				var info protocol.ErrorInfo
				_ = protocol.UnmarshalControl(f.Payload, &info)
				log.Warn("client reported session error", logging.Fields{
					"code":    info.Code,
					"message": info.Message,
				})
				return
			default:
				log.Warn("unexpected control frame", logging.Fields{"type": f.Type.String()})
				s.sendError(m, protocol.ErrCodeProtocol, "unexpected control frame")
				return
			}
		case <-m.Done():
			log.Info("control channel closed", nil)
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *ControlServer) sendError(m *mux.Muxer, code, message string) {
	payload, err := protocol.MarshalControl(protocol.ErrorInfo{Code: code, Message: message})
	if err != nil {
		return
	}
	_ = m.WriteControl(protocol.FrameError, payload)
}
