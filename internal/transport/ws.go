package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dalbodeule/loco-gate/internal/logging"
)

// wsConn 은 *websocket.Conn 을 net.Conn 으로 감싸는 어댑터입니다.
// 제어 채널 프레임은 자체 길이 헤더를 갖는 바이트 스트림이므로,
// WebSocket binary 메시지 경계는 의미가 없고 순서만 보존하면 됩니다.
type wsConn struct {
	ws *websocket.Conn

	readMu   sync.Mutex
	leftover []byte

	writeMu sync.Mutex
}

// NewWSConn 은 수립된 WebSocket 연결을 net.Conn 으로 반환합니다.
func NewWSConn(ws *websocket.Conn) net.Conn {
	return &wsConn{ws: ws}
}

func (c *wsConn) Read(p []byte) (int, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	for len(c.leftover) == 0 {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, net.ErrClosed
			}
			return 0, err
		}
		if mt != websocket.BinaryMessage {
			// text/ping 류는 스트림 바이트가 아니므로 건너뜁니다.
			continue
		}
		c.leftover = data
	}
	n := copy(p, c.leftover)
	c.leftover = c.leftover[n:]
	return n, nil
}

func (c *wsConn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	c.writeMu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.ws.Close()
}

func (c *wsConn) LocalAddr() net.Addr                { return c.ws.LocalAddr() }
func (c *wsConn) RemoteAddr() net.Addr               { return c.ws.RemoteAddr() }
func (c *wsConn) SetDeadline(t time.Time) error      { return c.ws.UnderlyingConn().SetDeadline(t) }
func (c *wsConn) SetReadDeadline(t time.Time) error  { return c.ws.SetReadDeadline(t) }
func (c *wsConn) SetWriteDeadline(t time.Time) error { return c.ws.SetWriteDeadline(t) }

// WSListener 는 HTTP 업그레이드 엔드포인트로 제어 채널 연결을 받는
// Listener 구현입니다. Accept 는 업그레이드가 끝난 연결을 net.Conn
// 으로 반환합니다.
type WSListener struct {
	ln     net.Listener
	srv    *http.Server
	log    logging.Logger
	conns  chan net.Conn
	done   chan struct{}
	closeO sync.Once
}

// ControlPath 는 WebSocket 제어 채널 업그레이드 경로입니다.
const ControlPath = "/control"

// NewWSListener 는 addr 에서 WebSocket 제어 채널 연결을 받습니다.
func NewWSListener(addr string, logger logging.Logger) (*WSListener, error) {
	if logger == nil {
		logger = logging.NewStdJSONLogger("ws_listener")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen %s: %w", addr, err)
	}

	l := &WSListener{
		ln:    ln,
		log:   logger.With(logging.Fields{"component": "ws_listener", "addr": addr}),
		conns: make(chan net.Conn),
		done:  make(chan struct{}),
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  32 * 1024,
		WriteBufferSize: 32 * 1024,
		// 제어 채널은 브라우저 클라이언트가 아니므로 origin 검사를 하지 않습니다.
		CheckOrigin: func(*http.Request) bool { return true },
	}
	mux := http.NewServeMux()
	mux.HandleFunc(ControlPath, func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			l.log.Warn("websocket upgrade failed", logging.Fields{
				"remote": r.RemoteAddr,
				"error":  err.Error(),
			})
			return
		}
		select {
		case l.conns <- NewWSConn(ws):
		case <-l.done:
			_ = ws.Close()
		}
	})

	l.srv = &http.Server{Handler: mux}
	go func() {
		if err := l.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			l.log.Error("websocket listener stopped", logging.Fields{"error": err.Error()})
		}
	}()
	return l, nil
}

func (l *WSListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.conns:
		return c, nil
	case <-l.done:
		return nil, net.ErrClosed
	}
}

func (l *WSListener) Close() error {
	var err error
	l.closeO.Do(func() {
		close(l.done)
		err = l.srv.Close()
	})
	return err
}

func (l *WSListener) Addr() net.Addr { return l.ln.Addr() }

// WSDialer 는 ws:// 또는 wss:// URL 로 제어 채널을 수립합니다.
type WSDialer struct {
	URL                string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

func (d *WSDialer) Dial(ctx context.Context) (net.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: d.Timeout,
	}
	if d.InsecureSkipVerify {
		dialer.TLSClientConfig = insecureTLSConfig()
	}
	ws, resp, err := dialer.DialContext(ctx, d.URL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("transport: dial %s: %w (status %d)", d.URL, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("transport: dial %s: %w", d.URL, err)
	}
	return NewWSConn(ws), nil
}
