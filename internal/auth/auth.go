package auth

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidToken 은 제시된 토큰이 어떤 주체와도 매칭되지 않음을 나타냅니다.
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenValidator 는 클라이언트가 AUTH 로 제시한 토큰을 검증합니다.
// 성공 시 토큰의 소유 주체(principal)를 반환합니다. 검증 실패와
// 저장소 장애는 에러로 구분합니다.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (principal string, err error)
}

// StaticValidator 는 설정에 나열된 고정 토큰 목록으로 검증합니다.
// 주체 이름이 따로 없으므로 마스킹된 토큰을 주체로 사용합니다.
type StaticValidator struct {
	tokens map[string]struct{}
}

// NewStaticValidator 는 토큰 목록으로 StaticValidator 를 생성합니다.
func NewStaticValidator(tokens []string) *StaticValidator {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return &StaticValidator{tokens: set}
}

// ValidateToken 은 토큰 전체 일치 여부만 확인합니다.
func (v *StaticValidator) ValidateToken(_ context.Context, token string) (string, error) {
	if _, ok := v.tokens[token]; !ok {
		return "", ErrInvalidToken
	}
	return MaskToken(token), nil
}

// MaskToken 은 로그/주체 표기용으로 토큰 앞 4자리만 남기고 가립니다.
func MaskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}

// Chain 은 여러 validator 를 순서대로 시도합니다. 하나라도 성공하면
// 그 결과를 쓰고, 전부 ErrInvalidToken 이면 ErrInvalidToken 을 반환합니다.
// 저장소 장애 등 다른 에러는 즉시 전파합니다.
type Chain []TokenValidator

func (c Chain) ValidateToken(ctx context.Context, token string) (string, error) {
	for _, v := range c {
		principal, err := v.ValidateToken(ctx, token)
		if err == nil {
			return principal, nil
		}
		if !errors.Is(err, ErrInvalidToken) {
			return "", err
		}
	}
	return "", ErrInvalidToken
}
