package main

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dalbodeule/loco-gate/internal/acme"
	"github.com/dalbodeule/loco-gate/internal/admin"
	"github.com/dalbodeule/loco-gate/internal/auth"
	"github.com/dalbodeule/loco-gate/internal/config"
	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/observability"
	"github.com/dalbodeule/loco-gate/internal/server"
	"github.com/dalbodeule/loco-gate/internal/session"
	"github.com/dalbodeule/loco-gate/internal/store"
	"github.com/dalbodeule/loco-gate/internal/transport"
)

func main() {
	logger := logging.NewStdJSONLogger("server")

	// 1. 서버 설정 로드 (.env + 환경변수)
	cfg, err := config.LoadServerConfigFromEnv()
	if err != nil {
		logger.Error("failed to load server config from env", logging.Fields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	logger = logging.NewLeveledJSONLogger("server", logging.ParseLevel(cfg.Logging.Level))

	logger.Info("loco-gate server starting", logging.Fields{
		"control_listen": cfg.ControlListen,
		"ws_listen":      cfg.WSListen,
		"public_listen":  cfg.PublicListen,
		"admin_listen":   cfg.AdminListen,
		"domain":         cfg.Domain,
		"debug":          cfg.Debug,
	})

	observability.MustRegister()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. 토큰 검증기 구성: 정적 토큰, 토큰 파일, DB 순으로 체인을 쌓습니다.
	var validators auth.Chain
	if len(cfg.AuthTokens) > 0 {
		validators = append(validators, auth.NewStaticValidator(cfg.AuthTokens))
	}
	if cfg.TokensFile != "" {
		fv, err := auth.NewFileValidator(cfg.TokensFile, logger)
		if err != nil {
			logger.Error("failed to load tokens file", logging.Fields{
				"path":  cfg.TokensFile,
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer fv.Close()
		validators = append(validators, fv)
	}

	// 3. 선택적 PostgreSQL 연동: 터널 레코드 저장과 DB 기반 토큰 검증
	var tunnelSvc admin.TunnelService
	if strings.TrimSpace(os.Getenv("LOCO_DB_DSN")) != "" {
		entClient, err := store.OpenPostgresFromEnv(ctx, logger)
		if err != nil {
			logger.Error("failed to connect to postgres", logging.Fields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer entClient.Close()
		tunnelSvc = admin.NewTunnelService(logger, entClient)
		validators = append(validators, admin.NewEntTokenValidator(logger, entClient))
	}
	if len(validators) == 0 {
		logger.Error("no token validator configured", logging.Fields{
			"hint": "set LOCO_SERVER_AUTH_TOKENS, LOCO_SERVER_TOKENS_FILE or LOCO_DB_DSN",
		})
		os.Exit(1)
	}

	// 4. TLS 설정: debug 는 self-signed, 운영은 ACME(lego) 발급
	//
	// LOCO_ACME_EMAIL 이 설정되지 않은 비 debug 환경에서는 평문 TCP 로
	// 기동합니다. TLS 종료를 앞단 LB 에 맡기는 배치를 위한 것입니다.
	var certManager acme.Manager
	if cfg.Debug {
		tlsCfg, err := transport.NewSelfSignedConfig("localhost", "127.0.0.1")
		if err != nil {
			logger.Error("failed to create self-signed certificate", logging.Fields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		logger.Warn("using self-signed certificate (debug mode)", logging.Fields{
			"note": "do not use this in production",
		})
		certManager = acme.NewStaticManager(tlsCfg)
	} else if email := strings.TrimSpace(os.Getenv("LOCO_ACME_EMAIL")); email != "" {
		domains := []string{cfg.Domain}
		if extra := strings.TrimSpace(os.Getenv("LOCO_ACME_DOMAINS")); extra != "" {
			domains = strings.Split(extra, ",")
		}
		mgr, err := acme.NewLegoManager(acme.LegoConfig{
			Email:    email,
			Domains:  domains,
			CADirURL: os.Getenv("LOCO_ACME_CA_DIR"),
			HTTPPort: os.Getenv("LOCO_ACME_HTTP_PORT"),
			CacheDir: os.Getenv("LOCO_ACME_CACHE_DIR"),
		}, logger)
		if err != nil {
			logger.Error("acme certificate issuance failed", logging.Fields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		certManager = mgr
	}

	// 5. 세션 레지스트리와 만료 sweeper
	registry := session.NewRegistry(logger, cfg.SessionTimeout)
	go registry.Run(ctx, cfg.SessionTimeout/3)
	defer registry.CloseAll()

	// 6. 제어 채널 리스너 (TLS/TCP + 선택적 WebSocket)
	var controlLn transport.Listener
	if certManager != nil {
		controlLn, err = transport.NewTLSListener(cfg.ControlListen, certManager.TLSConfig())
	} else {
		logger.Warn("control channel without TLS", logging.Fields{
			"note": "terminate TLS in front of loco-gate or set LOCO_ACME_EMAIL",
		})
		controlLn, err = transport.NewTCPListener(cfg.ControlListen)
	}
	if err != nil {
		logger.Error("failed to open control listener", logging.Fields{
			"addr":  cfg.ControlListen,
			"error": err.Error(),
		})
		os.Exit(1)
	}

	controlSrv := server.NewControlServer(cfg, logger, validators, registry)
	go func() {
		if err := controlSrv.Serve(ctx, controlLn); err != nil {
			logger.Error("control server stopped", logging.Fields{"error": err.Error()})
			stop()
		}
	}()
	logger.Info("control listener started", logging.Fields{"addr": cfg.ControlListen})

	if cfg.WSListen != "" {
		wsLn, err := transport.NewWSListener(cfg.WSListen, logger)
		if err != nil {
			logger.Error("failed to open websocket listener", logging.Fields{
				"addr":  cfg.WSListen,
				"error": err.Error(),
			})
			os.Exit(1)
		}
		go func() {
			if err := controlSrv.Serve(ctx, wsLn); err != nil {
				logger.Error("websocket control server stopped", logging.Fields{"error": err.Error()})
				stop()
			}
		}()
		logger.Info("websocket control listener started", logging.Fields{"addr": cfg.WSListen})
	}

	// 7. 공개 리스너
	publicLn, err := net.Listen("tcp", cfg.PublicListen)
	if err != nil {
		logger.Error("failed to open public listener", logging.Fields{
			"addr":  cfg.PublicListen,
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if certManager != nil && !cfg.Debug {
		publicLn = tls.NewListener(publicLn, certManager.TLSConfig())
	}
	publicSrv := server.NewPublicServer(cfg, logger, registry)
	go func() {
		if err := publicSrv.Serve(ctx, publicLn); err != nil {
			logger.Error("public server stopped", logging.Fields{"error": err.Error()})
			stop()
		}
	}()
	logger.Info("public listener started", logging.Fields{"addr": cfg.PublicListen})

	// 8. 관리 plane (+ /metrics)
	adminHandler := admin.NewHandler(logger, cfg.AdminAPIKey, tunnelSvc, registry)
	adminSrv := admin.NewAdminServer(cfg.AdminListen, adminHandler)
	go func() {
		if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin server stopped", logging.Fields{"error": err.Error()})
			stop()
		}
	}()
	logger.Info("admin listener started", logging.Fields{"addr": cfg.AdminListen})

	<-ctx.Done()
	logger.Info("shutting down", nil)
	_ = adminSrv.Close()
}
