package schema

import (
	"time"

	"github.com/google/uuid"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Tunnel 은 등록된 터널(subdomain)과 클라이언트 인증 토큰을 저장하는 엔티티입니다.
// - id: UUID 기본 키
// - subdomain: public identity 라벨 (예: my-app)
// - auth_token: 터널 클라이언트 인증용 랜덤 문자열(64자)
// - memo: 관리자 메모
// - created_at / updated_at: 감사용 타임스탬프
type Tunnel struct {
	ent.Schema
}

// Fields of the Tunnel.
func (Tunnel) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable(),
		field.String("subdomain").
			NotEmpty().
			Unique().
			Immutable(),
		field.String("auth_token").
			NotEmpty().
			MaxLen(64),
		field.String("memo").
			Default(""),
		field.Time("created_at").
			Default(time.Now),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the Tunnel.
func (Tunnel) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("auth_token").Unique(),
	}
}
