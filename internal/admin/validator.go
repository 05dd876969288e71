package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalbodeule/loco-gate/ent"
	enttunnel "github.com/dalbodeule/loco-gate/ent/tunnel"
	"github.com/dalbodeule/loco-gate/internal/auth"
	"github.com/dalbodeule/loco-gate/internal/logging"
)

// entTokenValidator 는 ent.Client 를 사용해 Tunnel 테이블에서 인증
// 토큰을 검증하는 auth.TokenValidator 구현체입니다. 매칭된 레코드의
// subdomain 을 주체(principal)로 반환하므로, DB 로 등록된 터널은 자동으로
// 자기 subdomain 을 주체 이름으로 갖습니다.
type entTokenValidator struct {
	logger logging.Logger
	client *ent.Client
}

// NewEntTokenValidator 는 ent 기반 TokenValidator 를 생성합니다.
func NewEntTokenValidator(logger logging.Logger, client *ent.Client) auth.TokenValidator {
	return &entTokenValidator{
		logger: logger.With(logging.Fields{"component": "token_validator"}),
		client: client,
	}
}

// ValidateToken 은 auth_token 이 일치하는 Tunnel 레코드를 조회합니다.
func (v *entTokenValidator) ValidateToken(ctx context.Context, token string) (string, error) {
	if v.client == nil {
		return "", fmt.Errorf("token validator: ent client is nil")
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", auth.ErrInvalidToken
	}

	if ctx == nil {
		ctx = context.Background()
	}

	row, err := v.client.Tunnel.Query().
		Where(enttunnel.AuthTokenEQ(token)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			v.logger.Warn("no tunnel matches auth token", logging.Fields{
				"auth_token_masked": maskKey(token),
			})
			return "", auth.ErrInvalidToken
		}
		v.logger.Error("failed to query tunnel by auth token", logging.Fields{
			"error": err.Error(),
		})
		return "", fmt.Errorf("token validator: db query failed: %w", err)
	}

	return row.Subdomain, nil
}
