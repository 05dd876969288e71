package mux

import (
	"io"
	"net"
	"sync"
)

// halfCloser 는 송신 방향만 닫을 수 있는 연결입니다. *net.TCPConn 등이
// 해당하며, 지원하지 않는 연결은 완전 종료로 대체합니다.
type halfCloser interface {
	CloseWrite() error
}

// Join 은 논리 스트림과 실제 네트워크 연결 사이에서 양방향으로 바이트를
// 중계합니다. 한쪽 방향이 EOF 에 도달하면 반대쪽의 송신 방향을
// half-close 하고, 양방향이 모두 끝나면 둘 다 완전히 닫습니다.
//
// 반환값은 (스트림→연결, 연결→스트림) 방향으로 중계된 바이트 수입니다.
// conn 쪽에서 이미 소비한 선행 바이트가 있으면(예: Host 헤더 peek 용
// bufio.Reader) connReader 로 전달합니다. nil 이면 conn 을 그대로 씁니다.
func Join(s *Stream, conn net.Conn, connReader io.Reader) (fromStream, toStream int64, err error) {
	if connReader == nil {
		connReader = conn
	}

	var wg sync.WaitGroup
	var errOnce sync.Once
	setErr := func(e error) {
		if e != nil && e != io.EOF {
			errOnce.Do(func() { err = e })
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		n, copyErr := io.Copy(s, connReader)
		toStream = n
		setErr(copyErr)
		_ = s.CloseWrite()
	}()
	go func() {
		defer wg.Done()
		n, copyErr := io.Copy(conn, s)
		fromStream = n
		setErr(copyErr)
		if hc, ok := conn.(halfCloser); ok {
			_ = hc.CloseWrite()
		} else {
			_ = conn.Close()
		}
	}()
	wg.Wait()

	_ = s.Close()
	_ = conn.Close()
	return fromStream, toStream, err
}
