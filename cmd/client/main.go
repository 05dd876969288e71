package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dalbodeule/loco-gate/internal/client"
	"github.com/dalbodeule/loco-gate/internal/config"
	"github.com/dalbodeule/loco-gate/internal/logging"
)

// maskToken 은 로그에 노출할 때 인증 토큰을 일부만 보여주기 위한 헬퍼입니다.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// firstNonEmpty 는 앞에서부터 처음으로 non-empty 인 문자열을 반환합니다.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func main() {
	logger := logging.NewStdJSONLogger("client")

	// 1. 환경변수(.env 포함)에서 클라이언트 설정 로드
	// internal/config 패키지가 .env 를 먼저 읽고, 이미 설정된 OS 환경변수를 우선시합니다.
	envCfg, err := config.LoadClientConfigFromEnv()
	if err != nil {
		logger.Error("failed to load client config from env", logging.Fields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// CLI 인자 정의 (env 보다 우선 적용됨)
	serverAddrFlag := flag.String("server-addr", "", "relay server control address (host:port, TLS)")
	serverURLFlag := flag.String("server-url", "", "relay server websocket URL (ws:// or wss://), overrides -server-addr")
	tokenFlag := flag.String("token", "", "tunnel auth token")
	subdomainFlag := flag.String("subdomain", "", "requested public identity (empty = server assigned)")
	localTargetFlag := flag.String("local-target", "", "local target (host:port), e.g. 127.0.0.1:8080")

	flag.Parse()

	// 2. CLI 인자 우선, env 후순위로 최종 설정 구성
	finalCfg := &config.ClientConfig{
		ServerAddr:  firstNonEmpty(strings.TrimSpace(*serverAddrFlag), strings.TrimSpace(envCfg.ServerAddr)),
		ServerURL:   firstNonEmpty(strings.TrimSpace(*serverURLFlag), strings.TrimSpace(envCfg.ServerURL)),
		AuthToken:   firstNonEmpty(strings.TrimSpace(*tokenFlag), strings.TrimSpace(envCfg.AuthToken)),
		Subdomain:   firstNonEmpty(strings.TrimSpace(*subdomainFlag), strings.TrimSpace(envCfg.Subdomain)),
		LocalTarget: firstNonEmpty(strings.TrimSpace(*localTargetFlag), strings.TrimSpace(envCfg.LocalTarget)),

		HeartbeatInterval: envCfg.HeartbeatInterval,
		PongTimeout:       envCfg.PongTimeout,
		ConnectTimeout:    envCfg.ConnectTimeout,
		MaxRetryInterval:  envCfg.MaxRetryInterval,

		Debug:   envCfg.Debug,
		Logging: envCfg.Logging,
	}

	// 3. 필수 필드 검증
	missing := []string{}
	if finalCfg.ServerAddr == "" && finalCfg.ServerURL == "" {
		missing = append(missing, "server_addr or server_url")
	}
	if finalCfg.AuthToken == "" {
		missing = append(missing, "token")
	}
	if finalCfg.LocalTarget == "" {
		missing = append(missing, "local_target")
	}
	if len(missing) > 0 {
		logger.Error("client config missing required fields", logging.Fields{
			"missing": missing,
		})
		os.Exit(1)
	}

	logger = logging.NewLeveledJSONLogger("client", logging.ParseLevel(finalCfg.Logging.Level))
	logger.Info("loco-gate client starting", logging.Fields{
		"server_addr":  finalCfg.ServerAddr,
		"server_url":   finalCfg.ServerURL,
		"subdomain":    finalCfg.Subdomain,
		"local_target": finalCfg.LocalTarget,
		"token_masked": maskToken(finalCfg.AuthToken),
		"debug":        finalCfg.Debug,
	})

	// 4. 제어 채널 수립 및 supervisor 실행. SIGINT/SIGTERM 으로 종료합니다.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = client.New(finalCfg, logger).Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("client stopped", nil)
	case errors.Is(err, client.ErrAuthRejected):
		logger.Error("server rejected the auth token", logging.Fields{
			"token_masked": maskToken(finalCfg.AuthToken),
		})
		os.Exit(1)
	default:
		logger.Error("client exited with error", logging.Fields{"error": err.Error()})
		os.Exit(1)
	}
}
