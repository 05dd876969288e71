package logging

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Level 은 로그의 심각도 레벨을 나타냅니다.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

var levelOrder = map[Level]int{
	DebugLevel: 0,
	InfoLevel:  1,
	WarnLevel:  2,
	ErrorLevel: 3,
}

// ParseLevel 은 설정 문자열을 Level 로 변환합니다. 알 수 없는 값이면 info 입니다.
func ParseLevel(s string) Level {
	switch Level(s) {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return Level(s)
	default:
		return InfoLevel
	}
}

// Fields 는 구조적 로그의 key/value 필드를 표현합니다.
// 세션/스트림 lifecycle 이벤트는 전부 이 필드로 전달되며, 포맷된 텍스트로
// 가공하지 않습니다.
type Fields map[string]any

// Logger 는 단일 라인 JSON 구조적 로그 인터페이스입니다.
type Logger interface {
	// Debug 는 디버그 레벨 로그를 기록합니다.
	Debug(msg string, fields Fields)

	// Info 는 정보 레벨 로그를 기록합니다.
	Info(msg string, fields Fields)

	// Warn 는 경고 레벨 로그를 기록합니다.
	Warn(msg string, fields Fields)

	// Error 는 에러 레벨 로그를 기록합니다.
	Error(msg string, fields Fields)

	// With 는 추가 필드를 항상 포함하는 child logger 를 생성합니다.
	With(fields Fields) Logger
}

// stdLogger 는 표준 log.Logger 를 감싼 구현체입니다.
type stdLogger struct {
	l      *log.Logger
	min    Level
	fields Fields
}

func (s *stdLogger) log(level Level, msg string, fields Fields) {
	if levelOrder[level] < levelOrder[s.min] {
		return
	}

	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}

	// 공통 필드 병합
	for k, v := range s.fields {
		entry[k] = v
	}
	// 호출 시 전달된 필드 병합(우선순위 높음)
	for k, v := range fields {
		entry[k] = v
	}

	b, err := json.Marshal(entry)
	if err != nil {
		// JSON 마샬 실패 시 fallback 으로 기본 포맷 사용
		s.l.Printf("level=%s msg=%s marshal_error=%v", level, msg, err)
		return
	}
	s.l.Println(string(b))
}

func (s *stdLogger) Debug(msg string, fields Fields) { s.log(DebugLevel, msg, fields) }
func (s *stdLogger) Info(msg string, fields Fields)  { s.log(InfoLevel, msg, fields) }
func (s *stdLogger) Warn(msg string, fields Fields)  { s.log(WarnLevel, msg, fields) }
func (s *stdLogger) Error(msg string, fields Fields) { s.log(ErrorLevel, msg, fields) }

func (s *stdLogger) With(fields Fields) Logger {
	merged := Fields{}
	for k, v := range s.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &stdLogger{
		l:      s.l,
		min:    s.min,
		fields: merged,
	}
}

// NewStdJSONLogger 는 stdout 으로 단일 라인 JSON 로그를 출력하는 기본
// Logger 를 생성합니다. 레벨 필터는 info 입니다.
func NewStdJSONLogger(component string) Logger {
	return NewLeveledJSONLogger(component, InfoLevel)
}

// NewLeveledJSONLogger 는 최소 레벨 필터가 적용된 JSON Logger 를 생성합니다.
//
// component, session_id, stream_id 같은 필드를 With 로 미리 설정해 두면
// 수집 스택에서 필터링/그룹핑에 활용할 수 있습니다.
func NewLeveledJSONLogger(component string, min Level) Logger {
	return &stdLogger{
		l:   log.New(os.Stdout, "", 0), // 프리픽스/타임스탬프는 JSON 필드로만 사용
		min: min,
		fields: Fields{
			"component": component,
		},
	}
}
