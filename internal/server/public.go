package server

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/dalbodeule/loco-gate/internal/config"
	"github.com/dalbodeule/loco-gate/internal/errorpages"
	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/mux"
	"github.com/dalbodeule/loco-gate/internal/observability"
	"github.com/dalbodeule/loco-gate/internal/session"
)

// headerPeekLimit 은 Host 헤더를 찾기 위해 들여다볼 최대 바이트 수입니다.
const headerPeekLimit = 8 * 1024

// headerPeekTimeout 은 공개 연결이 첫 요청 헤더를 보내기까지 기다리는
// 시간입니다. 아무것도 보내지 않는 연결이 리스너 자원을 붙잡지 못하게 합니다.
const headerPeekTimeout = 5 * time.Second

// PublicServer 는 인터넷 쪽 리스너입니다. 연결의 Host 헤더에서 public
// identity 를 읽어 세션을 찾고, 스트림 하나를 열어 raw 바이트를
// 양방향으로 중계합니다.
//
// 헤더는 bufio.Reader 로 peek 만 하고 소비하지 않으므로, 로컬 서비스는
// 원본 요청 바이트를 그대로 받습니다.
type PublicServer struct {
	cfg      *config.ServerConfig
	log      logging.Logger
	registry *session.Registry

	wg sync.WaitGroup
}

// NewPublicServer 는 공개 리스너 서버를 생성합니다.
func NewPublicServer(cfg *config.ServerConfig, logger logging.Logger, registry *session.Registry) *PublicServer {
	if logger == nil {
		logger = logging.NewStdJSONLogger("public_server")
	}
	return &PublicServer{
		cfg:      cfg,
		log:      logger.With(logging.Fields{"component": "public_server"}),
		registry: registry,
	}
}

// Serve 는 ln 에서 공개 연결을 받습니다. ctx 취소 또는 리스너 종료 시
// 반환합니다.
func (p *PublicServer) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				p.wg.Wait()
				return nil
			}
			p.log.Warn("public accept failed", logging.Fields{"error": err.Error()})
			continue
		}
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.handleConn(conn)
		}()
	}
}

// handleConn 은 공개 연결 하나를 세션 스트림으로 잇습니다. 세션이 없으면
// 404 에러 페이지를 쓰고 닫습니다. 어느 경로든 연결이 무한정 대기하는
// 일은 없습니다.
func (p *PublicServer) handleConn(conn net.Conn) {
	remote := conn.RemoteAddr().String()
	log := p.log.With(logging.Fields{"remote": remote})

	_ = conn.SetReadDeadline(time.Now().Add(headerPeekTimeout))
	br := bufio.NewReaderSize(conn, headerPeekLimit)

	host, err := peekHost(br)
	if err != nil {
		observability.PublicRejectionsTotal.WithLabelValues("bad_request").Inc()
		log.Info("public connection rejected", logging.Fields{"reason": "bad_request", "error": err.Error()})
		p.reject(conn, errorpages.StatusTunnelNotFound)
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	identity := p.identityFromHost(host)
	if identity == "" {
		observability.PublicRejectionsTotal.WithLabelValues("bad_request").Inc()
		log.Info("public connection rejected", logging.Fields{"reason": "bad_host", "host": host})
		p.reject(conn, errorpages.StatusTunnelNotFound)
		return
	}

	sess, err := p.registry.Lookup(identity)
	if err != nil {
		observability.PublicRejectionsTotal.WithLabelValues("no_session").Inc()
		log.Info("public connection rejected", logging.Fields{"reason": "no_session", "identity": identity})
		p.reject(conn, errorpages.StatusTunnelNotFound)
		return
	}

	st, err := sess.OpenStream(remote)
	if err != nil {
		observability.PublicRejectionsTotal.WithLabelValues("stream_open_failed").Inc()
		log.Warn("stream open failed", logging.Fields{
			"identity": identity,
			"error":    err.Error(),
		})
		p.reject(conn, errorpages.StatusLocalUnreachable)
		return
	}
	observability.StreamsTotal.Inc()
	log.Info("stream opened", logging.Fields{
		"session_id": sess.ID,
		"identity":   identity,
		"stream_id":  st.ID(),
	})

	toPublic, toLocal, relayErr := mux.Join(st, conn, br)
	sess.AddTransfer(uint64(toLocal), uint64(toPublic))
	observability.RelayBytesTotal.WithLabelValues("to_local").Add(float64(toLocal))
	observability.RelayBytesTotal.WithLabelValues("to_public").Add(float64(toPublic))

	fields := logging.Fields{
		"session_id": sess.ID,
		"stream_id":  st.ID(),
		"bytes_in":   toLocal,
		"bytes_out":  toPublic,
	}
	if relayErr != nil {
		fields["error"] = relayErr.Error()
	}
	log.Info("stream finished", fields)
}

// reject 는 거절 응답을 쓰고 연결을 닫습니다. 응답 쓰기도 시간 제한을 둡니다.
func (p *PublicServer) reject(conn net.Conn, status int) {
	_ = conn.SetWriteDeadline(time.Now().Add(headerPeekTimeout))
	_, _ = conn.Write(errorpages.RenderRaw(status))
	_ = conn.Close()
}

// identityFromHost 는 Host 값에서 public identity 를 뽑아냅니다.
// 도메인이 설정돼 있으면 "<identity>.<domain>" 형식만 허용하고,
// 설정돼 있지 않으면 첫 라벨을 identity 로 간주합니다.
func (p *PublicServer) identityFromHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	if domain := strings.ToLower(p.cfg.Domain); domain != "" {
		if !strings.HasSuffix(host, "."+domain) {
			return ""
		}
		label := strings.TrimSuffix(host, "."+domain)
		if strings.Contains(label, ".") {
			return ""
		}
		return label
	}

	label, _, found := strings.Cut(host, ".")
	if !found {
		return host
	}
	return label
}

// peekHost 는 요청 바이트를 소비하지 않고 HTTP Host 헤더 값을 찾습니다.
// 헤더 블록이 limit 안에 끝나지 않거나 Host 가 없으면 에러입니다.
func peekHost(br *bufio.Reader) (string, error) {
	for n := 1; n <= headerPeekLimit; n++ {
		// Peek(n) 은 n 바이트가 채워질 때까지 대기합니다. fill 이 한 번에
		// 더 많이 받아왔으면 버퍼에 있는 만큼 전부 들여다봅니다.
		buf, err := br.Peek(n)
		if err != nil {
			return "", err
		}
		if b := br.Buffered(); b > n {
			n = b
			if buf, err = br.Peek(n); err != nil {
				return "", err
			}
		}

		if host, ok := findHostHeader(buf); ok {
			return host, nil
		}
		if headerBlockDone(buf) {
			return "", errors.New("no Host header in request")
		}
	}
	return "", errors.New("request headers exceed peek limit")
}

var (
	crlf           = []byte("\r\n")
	headerBlockEnd = []byte("\r\n\r\n")
	hostHeaderName = []byte("host:")
)

func headerBlockDone(buf []byte) bool {
	return bytes.Contains(buf, headerBlockEnd)
}

// findHostHeader 는 peek 버퍼에서 완결된 "Host:" 라인을 찾습니다.
// 버퍼를 복사하거나 통째로 쪼개지 않고 CRLF 단위로 전진합니다.
func findHostHeader(buf []byte) (string, bool) {
	for {
		i := bytes.Index(buf, crlf)
		if i < 0 {
			// 마지막 조각은 아직 줄이 끝나지 않았을 수 있으므로 제외합니다.
			return "", false
		}
		line := buf[:i]
		buf = buf[i+2:]
		if len(line) >= len(hostHeaderName) && bytes.EqualFold(line[:len(hostHeaderName)], hostHeaderName) {
			return string(bytes.TrimSpace(line[len(hostHeaderName):])), true
		}
	}
}
