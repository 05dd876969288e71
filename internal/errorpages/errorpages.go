package errorpages

import (
	"embed"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StatusTunnelNotFound is the status served when no live session owns
// the requested public identity.
// 요청한 public identity 를 소유한 라이브 세션이 없을 때의 상태 코드입니다.
const StatusTunnelNotFound = http.StatusNotFound

// StatusLocalUnreachable is served when the tunnel client could not
// reach its local target.
// 터널 클라이언트가 로컬 타깃에 연결하지 못했을 때의 상태 코드입니다.
const StatusLocalUnreachable = http.StatusBadGateway

//go:embed templates/*.html
var embeddedTemplatesFS embed.FS

// Render writes an error page HTML for the given HTTP status code to the response writer.
// If no matching template is found, it falls back to a minimal plain text response.
//
// 주어진 HTTP 상태 코드에 대한 에러 페이지 HTML을 응답에 씁니다.
// 해당 템플릿이 없으면 최소한의 텍스트 응답으로 폴백합니다.
func Render(w http.ResponseWriter, _ *http.Request, status int) {
	html, ok := Load(status)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if !ok {
		_, _ = fmt.Fprintf(w, "%d %s", status, http.StatusText(status))
		return
	}
	_, _ = w.Write(html)
}

// RenderRaw 는 http.Server 를 거치지 않는 raw TCP 연결에 쓸 수 있도록
// 완성된 HTTP/1.1 응답 바이트를 만들어 반환합니다. 공개 리스너가
// 터널 미존재 등으로 연결을 거절할 때 사용합니다.
func RenderRaw(status int) []byte {
	body, ok := Load(status)
	if !ok {
		body = []byte(fmt.Sprintf("%d %s", status, http.StatusText(status)))
	}
	head := fmt.Sprintf(
		"HTTP/1.1 %d %s\r\nContent-Type: text/html; charset=utf-8\r\nContent-Length: %d\r\nConnection: close\r\n\r\n",
		status, http.StatusText(status), len(body))
	return append([]byte(head), body...)
}

// Load attempts to load an error page for the given HTTP status code.
//
// Priority:
//  1. $LOCO_ERROR_PAGES_DIR/<status>.html (or ./errors/<status>.html if env is empty)
//  2. embedded template: templates/<status>.html
//
// 주어진 HTTP 상태 코드에 대한 에러 페이지를 로드합니다.
//
// 우선순위:
//  1. $LOCO_ERROR_PAGES_DIR/<status>.html (env 미설정 시 ./errors/<status>.html)
//  2. 내장 템플릿: templates/<status>.html
func Load(status int) ([]byte, bool) {
	name := fmt.Sprintf("%d.html", status)

	// 1. 외부 디렉터리 우선 (LOCO_ERROR_PAGES_DIR, 기본값 "./errors").
	dir := strings.TrimSpace(os.Getenv("LOCO_ERROR_PAGES_DIR"))
	if dir == "" {
		dir = "./errors"
	}
	p := filepath.Join(dir, name)
	if data, err := os.ReadFile(p); err == nil {
		return data, true
	}

	// 2. 내장 기본 템플릿.
	p = filepath.Join("templates", name)
	if data, err := embeddedTemplatesFS.ReadFile(p); err == nil {
		return data, true
	}

	return nil, false
}
