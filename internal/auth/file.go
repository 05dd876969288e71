package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dalbodeule/loco-gate/internal/logging"
)

// FileValidator 는 "principal:token" 라인 형식의 토큰 파일로 검증합니다.
// 파일이 바뀌면 fsnotify 이벤트로 감지해 재로드하므로, 서버 재시작 없이
// 토큰을 추가/회수할 수 있습니다.
//
// 파일 형식:
//   - 한 줄에 하나씩 principal:token
//   - 빈 줄과 # 으로 시작하는 줄은 무시
type FileValidator struct {
	path string
	log  logging.Logger

	mu     sync.RWMutex
	tokens map[string]string // token -> principal

	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once
}

// NewFileValidator 는 토큰 파일을 읽고 변경 감시를 시작합니다.
func NewFileValidator(path string, logger logging.Logger) (*FileValidator, error) {
	if logger == nil {
		logger = logging.NewStdJSONLogger("auth_file")
	}
	v := &FileValidator{
		path: path,
		log:  logger.With(logging.Fields{"component": "auth_file", "path": path}),
		done: make(chan struct{}),
	}
	if err := v.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("auth: create watcher: %w", err)
	}
	// 에디터의 rename-replace 저장 방식까지 잡으려면 파일이 아니라
	// 디렉터리를 감시해야 합니다.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("auth: watch %s: %w", filepath.Dir(path), err)
	}
	v.watcher = watcher
	go v.watch()
	return v, nil
}

// ValidateToken 은 현재 로드된 토큰 테이블에서 주체를 찾습니다.
func (v *FileValidator) ValidateToken(_ context.Context, token string) (string, error) {
	v.mu.RLock()
	principal, ok := v.tokens[token]
	v.mu.RUnlock()
	if !ok {
		return "", ErrInvalidToken
	}
	return principal, nil
}

// Close 는 파일 감시를 중단합니다.
func (v *FileValidator) Close() error {
	var err error
	v.once.Do(func() {
		close(v.done)
		if v.watcher != nil {
			err = v.watcher.Close()
		}
	})
	return err
}

func (v *FileValidator) watch() {
	base := filepath.Base(v.path)
	for {
		select {
		case <-v.done:
			return
		case ev, ok := <-v.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := v.reload(); err != nil {
				// 재로드 실패 시 기존 테이블을 유지합니다.
				v.log.Error("token file reload failed", logging.Fields{"error": err.Error()})
				continue
			}
			v.log.Info("token file reloaded", logging.Fields{"tokens": v.count()})
		case err, ok := <-v.watcher.Errors:
			if !ok {
				return
			}
			v.log.Warn("token file watcher error", logging.Fields{"error": err.Error()})
		}
	}
}

func (v *FileValidator) count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.tokens)
}

func (v *FileValidator) reload() error {
	f, err := os.Open(v.path)
	if err != nil {
		return fmt.Errorf("auth: open token file: %w", err)
	}
	defer f.Close()

	tokens := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("auth: token file line %d: want principal:token", lineNo)
		}
		principal := strings.TrimSpace(parts[0])
		token := strings.TrimSpace(parts[1])
		if principal == "" || token == "" {
			return fmt.Errorf("auth: token file line %d: empty principal or token", lineNo)
		}
		tokens[token] = principal
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("auth: read token file: %w", err)
	}

	v.mu.Lock()
	v.tokens = tokens
	v.mu.Unlock()
	return nil
}
