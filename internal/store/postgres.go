// Package store 는 터널 레코드 영속화를 위한 PostgreSQL 연결을
// 관리합니다. ent 클라이언트 생성과 커넥션 풀 설정, 스키마 마이그레이션을
// 담당하며, 설정 자체는 internal/config 에서 읽어옵니다.
package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/dalbodeule/loco-gate/ent"
	"github.com/dalbodeule/loco-gate/internal/config"
	"github.com/dalbodeule/loco-gate/internal/logging"

	_ "github.com/lib/pq"
)

// OpenPostgres 는 PostgreSQL 위의 ent.Client 를 엽니다. 커넥션 풀을
// 설정하고 연결을 확인한 뒤 ent 스키마 기준으로 테이블을 생성합니다.
// 이후 *sql.DB 의 소유권은 ent 로 넘어가므로, 종료 시에는 반환된
// ent.Client 만 닫으면 됩니다.
func OpenPostgres(ctx context.Context, logger logging.Logger, cfg *config.StoreConfig) (*ent.Client, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("store: open postgres: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping postgres: %w", err)
	}

	client := ent.NewClient(ent.Driver(entsql.OpenDB("postgres", db)))
	if err := client.Schema.Create(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("store: schema create: %w", err)
	}

	logger.Info("connected to postgres and applied schema", logging.Fields{
		"max_open_conns": cfg.MaxOpenConns,
	})
	return client, nil
}

// OpenPostgresFromEnv 는 환경변수에서 설정을 읽어 PostgreSQL ent
// 클라이언트를 엽니다. 서버 기동 시점에 호출하는 편의 함수입니다.
func OpenPostgresFromEnv(ctx context.Context, logger logging.Logger) (*ent.Client, error) {
	cfg, err := config.LoadStoreConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return OpenPostgres(ctx, logger, cfg)
}
