package admin

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dalbodeule/loco-gate/ent"
	enttunnel "github.com/dalbodeule/loco-gate/ent/tunnel"
	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/protocol"
)

// TunnelService 는 터널 등록/해제 및 조회를 담당하는 비즈니스 로직 인터페이스입니다.
// 실제 구현에서는 ent.Client(PostgreSQL)를 주입받아 동작하게 됩니다.
type TunnelService interface {
	// RegisterTunnel 은 새로운 subdomain 을 등록하고, 해당 터널을 사용할
	// 클라이언트 인증 토큰(랜덤 64자)을 생성해 반환합니다.
	RegisterTunnel(ctx context.Context, subdomain, memo string) (authToken string, err error)

	// UnregisterTunnel 은 subdomain 과 인증 토큰을 함께 받아 등록을 해제합니다.
	UnregisterTunnel(ctx context.Context, subdomain, authToken string) error

	// IsTunnelRegistered 는 주어진 subdomain 이 이미 등록되어 있는지 여부를 반환합니다.
	IsTunnelRegistered(ctx context.Context, subdomain string) (bool, error)

	// GetTunnel 은 주어진 subdomain 에 대한 전체 엔티티 정보를 반환합니다.
	// 존재하지 않으면 ErrTunnelNotFound 를 반환합니다.
	GetTunnel(ctx context.Context, subdomain string) (*ent.Tunnel, error)
}

// TunnelServiceImpl 는 ent.Client 를 사용해 TunnelService 를 구현한 구조체입니다.
type TunnelServiceImpl struct {
	logger logging.Logger
	client *ent.Client
}

// NewTunnelService 는 기본 TunnelService 구현체를 생성합니다.
func NewTunnelService(logger logging.Logger, client *ent.Client) TunnelService {
	return &TunnelServiceImpl{
		logger: logger.With(logging.Fields{"component": "tunnel_service"}),
		client: client,
	}
}

// RegisterTunnel 은 새 subdomain 을 등록하고, 랜덤 64자 인증 토큰을 생성해 반환합니다.
func (s *TunnelServiceImpl) RegisterTunnel(ctx context.Context, subdomain, memo string) (string, error) {
	sub := protocol.NormalizeIdentity(subdomain)
	if sub == "" {
		return "", ErrInvalidSubdomain
	}

	if ctx == nil {
		ctx = context.Background()
	}

	token, err := generateAuthToken(64)
	if err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}

	_, err = s.client.Tunnel.Create().
		SetSubdomain(sub).
		SetAuthToken(token).
		SetMemo(memo).
		Save(ctx)
	if err != nil {
		s.logger.Error("failed to register tunnel", logging.Fields{
			"subdomain": sub,
			"error":     err.Error(),
		})
		return "", fmt.Errorf("register tunnel: %w", err)
	}

	s.logger.Info("tunnel registered", logging.Fields{
		"subdomain":         sub,
		"auth_token_masked": maskKey(token),
	})

	return token, nil
}

// UnregisterTunnel 은 (subdomain, auth_token) 조합이 일치하는 레코드를 삭제합니다.
func (s *TunnelServiceImpl) UnregisterTunnel(ctx context.Context, subdomain, authToken string) error {
	sub := protocol.NormalizeIdentity(subdomain)
	if sub == "" {
		return ErrInvalidSubdomain
	}
	token := strings.TrimSpace(authToken)
	if token == "" {
		return ErrInvalidAuthToken
	}

	if ctx == nil {
		ctx = context.Background()
	}

	n, err := s.client.Tunnel.Delete().
		Where(
			enttunnel.SubdomainEQ(sub),
			enttunnel.AuthTokenEQ(token),
		).
		Exec(ctx)
	if err != nil {
		s.logger.Error("failed to unregister tunnel", logging.Fields{
			"subdomain": sub,
			"error":     err.Error(),
		})
		return fmt.Errorf("unregister tunnel: %w", err)
	}
	if n == 0 {
		return ErrTunnelNotFound
	}

	s.logger.Info("tunnel unregistered", logging.Fields{
		"subdomain":         sub,
		"auth_token_masked": maskKey(token),
	})

	return nil
}

// IsTunnelRegistered 는 주어진 subdomain 이 이미 등록되어 있는지 여부를 반환합니다.
func (s *TunnelServiceImpl) IsTunnelRegistered(ctx context.Context, subdomain string) (bool, error) {
	sub := protocol.NormalizeIdentity(subdomain)
	if sub == "" {
		return false, ErrInvalidSubdomain
	}

	if ctx == nil {
		ctx = context.Background()
	}

	cnt, err := s.client.Tunnel.Query().
		Where(enttunnel.SubdomainEQ(sub)).
		Count(ctx)
	if err != nil {
		s.logger.Error("failed to check tunnel existence", logging.Fields{
			"subdomain": sub,
			"error":     err.Error(),
		})
		return false, fmt.Errorf("check tunnel existence: %w", err)
	}
	return cnt > 0, nil
}

// GetTunnel 은 주어진 subdomain 에 대한 전체 엔티티 정보를 반환합니다.
// 존재하지 않으면 ErrTunnelNotFound 를 반환합니다.
func (s *TunnelServiceImpl) GetTunnel(ctx context.Context, subdomain string) (*ent.Tunnel, error) {
	sub := protocol.NormalizeIdentity(subdomain)
	if sub == "" {
		return nil, ErrInvalidSubdomain
	}

	if ctx == nil {
		ctx = context.Background()
	}

	row, err := s.client.Tunnel.Query().
		Where(enttunnel.SubdomainEQ(sub)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrTunnelNotFound
		}
		s.logger.Error("failed to get tunnel", logging.Fields{
			"subdomain": sub,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("get tunnel: %w", err)
	}
	return row, nil
}

// generateAuthToken 은 랜덤 바이트를 생성하여 hex 문자열로 인코딩합니다.
func generateAuthToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid token length: %d", length)
	}

	// hex 인코딩 결과 길이가 length 이상이 되도록 필요한 바이트 수 계산
	byteLen := (length + 1) / 2
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := hex.EncodeToString(b)
	if len(s) > length {
		s = s[:length]
	}
	return s, nil
}

// maskKey 는 로그 등에 사용할 수 있도록 토큰을 마스킹합니다.
func maskKey(key string) string {
	key = strings.TrimSpace(key)
	if len(key) <= 8 {
		if key == "" {
			return ""
		}
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// 에러 타입 정의.
var (
	// ErrInvalidSubdomain 은 subdomain 이 비어있거나 라벨 형식이 아닌 경우를 나타냅니다.
	ErrInvalidSubdomain = errors.New("invalid subdomain")

	// ErrInvalidAuthToken 은 auth_token 이 비어있는 경우를 나타냅니다.
	ErrInvalidAuthToken = errors.New("invalid auth token")

	// ErrTunnelNotFound 는 (subdomain, auth_token) 조합에 해당하는 레코드가 없는 경우를 나타냅니다.
	ErrTunnelNotFound = errors.New("tunnel not found")
)
