// Code generated by ent, DO NOT EDIT.

package tunnel

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/dalbodeule/loco-gate/ent/predicate"
	"github.com/google/uuid"
)

// ID filters vertices based on their ID field.
func ID(id uuid.UUID) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id uuid.UUID) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id uuid.UUID) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...uuid.UUID) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...uuid.UUID) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id uuid.UUID) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id uuid.UUID) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id uuid.UUID) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id uuid.UUID) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLTE(FieldID, id))
}

// Subdomain applies equality check predicate on the "subdomain" field. It's identical to SubdomainEQ.
func Subdomain(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldSubdomain, v))
}

// AuthToken applies equality check predicate on the "auth_token" field. It's identical to AuthTokenEQ.
func AuthToken(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldAuthToken, v))
}

// Memo applies equality check predicate on the "memo" field. It's identical to MemoEQ.
func Memo(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldMemo, v))
}

// CreatedAt applies equality check predicate on the "created_at" field. It's identical to CreatedAtEQ.
func CreatedAt(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldCreatedAt, v))
}

// UpdatedAt applies equality check predicate on the "updated_at" field. It's identical to UpdatedAtEQ.
func UpdatedAt(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldUpdatedAt, v))
}

// SubdomainEQ applies the EQ predicate on the "subdomain" field.
func SubdomainEQ(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldSubdomain, v))
}

// SubdomainNEQ applies the NEQ predicate on the "subdomain" field.
func SubdomainNEQ(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNEQ(FieldSubdomain, v))
}

// SubdomainIn applies the In predicate on the "subdomain" field.
func SubdomainIn(vs ...string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldIn(FieldSubdomain, vs...))
}

// SubdomainNotIn applies the NotIn predicate on the "subdomain" field.
func SubdomainNotIn(vs ...string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNotIn(FieldSubdomain, vs...))
}

// SubdomainGT applies the GT predicate on the "subdomain" field.
func SubdomainGT(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGT(FieldSubdomain, v))
}

// SubdomainGTE applies the GTE predicate on the "subdomain" field.
func SubdomainGTE(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGTE(FieldSubdomain, v))
}

// SubdomainLT applies the LT predicate on the "subdomain" field.
func SubdomainLT(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLT(FieldSubdomain, v))
}

// SubdomainLTE applies the LTE predicate on the "subdomain" field.
func SubdomainLTE(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLTE(FieldSubdomain, v))
}

// SubdomainContains applies the Contains predicate on the "subdomain" field.
func SubdomainContains(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldContains(FieldSubdomain, v))
}

// SubdomainHasPrefix applies the HasPrefix predicate on the "subdomain" field.
func SubdomainHasPrefix(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldHasPrefix(FieldSubdomain, v))
}

// SubdomainHasSuffix applies the HasSuffix predicate on the "subdomain" field.
func SubdomainHasSuffix(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldHasSuffix(FieldSubdomain, v))
}

// SubdomainEqualFold applies the EqualFold predicate on the "subdomain" field.
func SubdomainEqualFold(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEqualFold(FieldSubdomain, v))
}

// SubdomainContainsFold applies the ContainsFold predicate on the "subdomain" field.
func SubdomainContainsFold(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldContainsFold(FieldSubdomain, v))
}

// AuthTokenEQ applies the EQ predicate on the "auth_token" field.
func AuthTokenEQ(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldAuthToken, v))
}

// AuthTokenNEQ applies the NEQ predicate on the "auth_token" field.
func AuthTokenNEQ(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNEQ(FieldAuthToken, v))
}

// AuthTokenIn applies the In predicate on the "auth_token" field.
func AuthTokenIn(vs ...string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldIn(FieldAuthToken, vs...))
}

// AuthTokenNotIn applies the NotIn predicate on the "auth_token" field.
func AuthTokenNotIn(vs ...string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNotIn(FieldAuthToken, vs...))
}

// AuthTokenGT applies the GT predicate on the "auth_token" field.
func AuthTokenGT(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGT(FieldAuthToken, v))
}

// AuthTokenGTE applies the GTE predicate on the "auth_token" field.
func AuthTokenGTE(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGTE(FieldAuthToken, v))
}

// AuthTokenLT applies the LT predicate on the "auth_token" field.
func AuthTokenLT(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLT(FieldAuthToken, v))
}

// AuthTokenLTE applies the LTE predicate on the "auth_token" field.
func AuthTokenLTE(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLTE(FieldAuthToken, v))
}

// AuthTokenContains applies the Contains predicate on the "auth_token" field.
func AuthTokenContains(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldContains(FieldAuthToken, v))
}

// AuthTokenHasPrefix applies the HasPrefix predicate on the "auth_token" field.
func AuthTokenHasPrefix(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldHasPrefix(FieldAuthToken, v))
}

// AuthTokenHasSuffix applies the HasSuffix predicate on the "auth_token" field.
func AuthTokenHasSuffix(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldHasSuffix(FieldAuthToken, v))
}

// AuthTokenEqualFold applies the EqualFold predicate on the "auth_token" field.
func AuthTokenEqualFold(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEqualFold(FieldAuthToken, v))
}

// AuthTokenContainsFold applies the ContainsFold predicate on the "auth_token" field.
func AuthTokenContainsFold(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldContainsFold(FieldAuthToken, v))
}

// MemoEQ applies the EQ predicate on the "memo" field.
func MemoEQ(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldMemo, v))
}

// MemoNEQ applies the NEQ predicate on the "memo" field.
func MemoNEQ(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNEQ(FieldMemo, v))
}

// MemoIn applies the In predicate on the "memo" field.
func MemoIn(vs ...string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldIn(FieldMemo, vs...))
}

// MemoNotIn applies the NotIn predicate on the "memo" field.
func MemoNotIn(vs ...string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNotIn(FieldMemo, vs...))
}

// MemoGT applies the GT predicate on the "memo" field.
func MemoGT(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGT(FieldMemo, v))
}

// MemoGTE applies the GTE predicate on the "memo" field.
func MemoGTE(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGTE(FieldMemo, v))
}

// MemoLT applies the LT predicate on the "memo" field.
func MemoLT(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLT(FieldMemo, v))
}

// MemoLTE applies the LTE predicate on the "memo" field.
func MemoLTE(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLTE(FieldMemo, v))
}

// MemoContains applies the Contains predicate on the "memo" field.
func MemoContains(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldContains(FieldMemo, v))
}

// MemoHasPrefix applies the HasPrefix predicate on the "memo" field.
func MemoHasPrefix(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldHasPrefix(FieldMemo, v))
}

// MemoHasSuffix applies the HasSuffix predicate on the "memo" field.
func MemoHasSuffix(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldHasSuffix(FieldMemo, v))
}

// MemoEqualFold applies the EqualFold predicate on the "memo" field.
func MemoEqualFold(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEqualFold(FieldMemo, v))
}

// MemoContainsFold applies the ContainsFold predicate on the "memo" field.
func MemoContainsFold(v string) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldContainsFold(FieldMemo, v))
}

// CreatedAtEQ applies the EQ predicate on the "created_at" field.
func CreatedAtEQ(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldCreatedAt, v))
}

// CreatedAtNEQ applies the NEQ predicate on the "created_at" field.
func CreatedAtNEQ(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNEQ(FieldCreatedAt, v))
}

// CreatedAtIn applies the In predicate on the "created_at" field.
func CreatedAtIn(vs ...time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldIn(FieldCreatedAt, vs...))
}

// CreatedAtNotIn applies the NotIn predicate on the "created_at" field.
func CreatedAtNotIn(vs ...time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNotIn(FieldCreatedAt, vs...))
}

// CreatedAtGT applies the GT predicate on the "created_at" field.
func CreatedAtGT(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGT(FieldCreatedAt, v))
}

// CreatedAtGTE applies the GTE predicate on the "created_at" field.
func CreatedAtGTE(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGTE(FieldCreatedAt, v))
}

// CreatedAtLT applies the LT predicate on the "created_at" field.
func CreatedAtLT(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLT(FieldCreatedAt, v))
}

// CreatedAtLTE applies the LTE predicate on the "created_at" field.
func CreatedAtLTE(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLTE(FieldCreatedAt, v))
}

// UpdatedAtEQ applies the EQ predicate on the "updated_at" field.
func UpdatedAtEQ(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldEQ(FieldUpdatedAt, v))
}

// UpdatedAtNEQ applies the NEQ predicate on the "updated_at" field.
func UpdatedAtNEQ(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNEQ(FieldUpdatedAt, v))
}

// UpdatedAtIn applies the In predicate on the "updated_at" field.
func UpdatedAtIn(vs ...time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldIn(FieldUpdatedAt, vs...))
}

// UpdatedAtNotIn applies the NotIn predicate on the "updated_at" field.
func UpdatedAtNotIn(vs ...time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldNotIn(FieldUpdatedAt, vs...))
}

// UpdatedAtGT applies the GT predicate on the "updated_at" field.
func UpdatedAtGT(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGT(FieldUpdatedAt, v))
}

// UpdatedAtGTE applies the GTE predicate on the "updated_at" field.
func UpdatedAtGTE(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldGTE(FieldUpdatedAt, v))
}

// UpdatedAtLT applies the LT predicate on the "updated_at" field.
func UpdatedAtLT(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLT(FieldUpdatedAt, v))
}

// UpdatedAtLTE applies the LTE predicate on the "updated_at" field.
func UpdatedAtLTE(v time.Time) predicate.Tunnel {
	return predicate.Tunnel(sql.FieldLTE(FieldUpdatedAt, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.Tunnel) predicate.Tunnel {
	return predicate.Tunnel(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.Tunnel) predicate.Tunnel {
	return predicate.Tunnel(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.Tunnel) predicate.Tunnel {
	return predicate.Tunnel(sql.NotPredicates(p))
}
