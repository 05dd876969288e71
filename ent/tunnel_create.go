// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/dalbodeule/loco-gate/ent/tunnel"
	"github.com/google/uuid"
)

// TunnelCreate is the builder for creating a Tunnel entity.
type TunnelCreate struct {
	config
	mutation *TunnelMutation
	hooks    []Hook
}

// SetSubdomain sets the "subdomain" field.
func (tc *TunnelCreate) SetSubdomain(s string) *TunnelCreate {
	tc.mutation.SetSubdomain(s)
	return tc
}

// SetAuthToken sets the "auth_token" field.
func (tc *TunnelCreate) SetAuthToken(s string) *TunnelCreate {
	tc.mutation.SetAuthToken(s)
	return tc
}

// SetMemo sets the "memo" field.
func (tc *TunnelCreate) SetMemo(s string) *TunnelCreate {
	tc.mutation.SetMemo(s)
	return tc
}

// SetNillableMemo sets the "memo" field if the given value is not nil.
func (tc *TunnelCreate) SetNillableMemo(s *string) *TunnelCreate {
	if s != nil {
		tc.SetMemo(*s)
	}
	return tc
}

// SetCreatedAt sets the "created_at" field.
func (tc *TunnelCreate) SetCreatedAt(t time.Time) *TunnelCreate {
	tc.mutation.SetCreatedAt(t)
	return tc
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (tc *TunnelCreate) SetNillableCreatedAt(t *time.Time) *TunnelCreate {
	if t != nil {
		tc.SetCreatedAt(*t)
	}
	return tc
}

// SetUpdatedAt sets the "updated_at" field.
func (tc *TunnelCreate) SetUpdatedAt(t time.Time) *TunnelCreate {
	tc.mutation.SetUpdatedAt(t)
	return tc
}

// SetNillableUpdatedAt sets the "updated_at" field if the given value is not nil.
func (tc *TunnelCreate) SetNillableUpdatedAt(t *time.Time) *TunnelCreate {
	if t != nil {
		tc.SetUpdatedAt(*t)
	}
	return tc
}

// SetID sets the "id" field.
func (tc *TunnelCreate) SetID(u uuid.UUID) *TunnelCreate {
	tc.mutation.SetID(u)
	return tc
}

// SetNillableID sets the "id" field if the given value is not nil.
func (tc *TunnelCreate) SetNillableID(u *uuid.UUID) *TunnelCreate {
	if u != nil {
		tc.SetID(*u)
	}
	return tc
}

// Mutation returns the TunnelMutation object of the builder.
func (tc *TunnelCreate) Mutation() *TunnelMutation {
	return tc.mutation
}

// Save creates the Tunnel in the database.
func (tc *TunnelCreate) Save(ctx context.Context) (*Tunnel, error) {
	tc.defaults()
	return withHooks(ctx, tc.sqlSave, tc.mutation, tc.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (tc *TunnelCreate) SaveX(ctx context.Context) *Tunnel {
	v, err := tc.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (tc *TunnelCreate) Exec(ctx context.Context) error {
	_, err := tc.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (tc *TunnelCreate) ExecX(ctx context.Context) {
	if err := tc.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (tc *TunnelCreate) defaults() {
	if _, ok := tc.mutation.Memo(); !ok {
		v := tunnel.DefaultMemo
		tc.mutation.SetMemo(v)
	}
	if _, ok := tc.mutation.CreatedAt(); !ok {
		v := tunnel.DefaultCreatedAt()
		tc.mutation.SetCreatedAt(v)
	}
	if _, ok := tc.mutation.UpdatedAt(); !ok {
		v := tunnel.DefaultUpdatedAt()
		tc.mutation.SetUpdatedAt(v)
	}
	if _, ok := tc.mutation.ID(); !ok {
		v := tunnel.DefaultID()
		tc.mutation.SetID(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (tc *TunnelCreate) check() error {
	if _, ok := tc.mutation.Subdomain(); !ok {
		return &ValidationError{Name: "subdomain", err: errors.New(`ent: missing required field "Tunnel.subdomain"`)}
	}
	if v, ok := tc.mutation.Subdomain(); ok {
		if err := tunnel.SubdomainValidator(v); err != nil {
			return &ValidationError{Name: "subdomain", err: fmt.Errorf(`ent: validator failed for field "Tunnel.subdomain": %w`, err)}
		}
	}
	if _, ok := tc.mutation.AuthToken(); !ok {
		return &ValidationError{Name: "auth_token", err: errors.New(`ent: missing required field "Tunnel.auth_token"`)}
	}
	if v, ok := tc.mutation.AuthToken(); ok {
		if err := tunnel.AuthTokenValidator(v); err != nil {
			return &ValidationError{Name: "auth_token", err: fmt.Errorf(`ent: validator failed for field "Tunnel.auth_token": %w`, err)}
		}
	}
	if _, ok := tc.mutation.Memo(); !ok {
		return &ValidationError{Name: "memo", err: errors.New(`ent: missing required field "Tunnel.memo"`)}
	}
	if _, ok := tc.mutation.CreatedAt(); !ok {
		return &ValidationError{Name: "created_at", err: errors.New(`ent: missing required field "Tunnel.created_at"`)}
	}
	if _, ok := tc.mutation.UpdatedAt(); !ok {
		return &ValidationError{Name: "updated_at", err: errors.New(`ent: missing required field "Tunnel.updated_at"`)}
	}
	return nil
}

func (tc *TunnelCreate) sqlSave(ctx context.Context) (*Tunnel, error) {
	if err := tc.check(); err != nil {
		return nil, err
	}
	_node, _spec := tc.createSpec()
	if err := sqlgraph.CreateNode(ctx, tc.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	if _spec.ID.Value != nil {
		if id, ok := _spec.ID.Value.(*uuid.UUID); ok {
			_node.ID = *id
		} else if err := _node.ID.Scan(_spec.ID.Value); err != nil {
			return nil, err
		}
	}
	tc.mutation.id = &_node.ID
	tc.mutation.done = true
	return _node, nil
}

func (tc *TunnelCreate) createSpec() (*Tunnel, *sqlgraph.CreateSpec) {
	var (
		_node = &Tunnel{config: tc.config}
		_spec = sqlgraph.NewCreateSpec(tunnel.Table, sqlgraph.NewFieldSpec(tunnel.FieldID, field.TypeUUID))
	)
	if id, ok := tc.mutation.ID(); ok {
		_node.ID = id
		_spec.ID.Value = &id
	}
	if value, ok := tc.mutation.Subdomain(); ok {
		_spec.SetField(tunnel.FieldSubdomain, field.TypeString, value)
		_node.Subdomain = value
	}
	if value, ok := tc.mutation.AuthToken(); ok {
		_spec.SetField(tunnel.FieldAuthToken, field.TypeString, value)
		_node.AuthToken = value
	}
	if value, ok := tc.mutation.Memo(); ok {
		_spec.SetField(tunnel.FieldMemo, field.TypeString, value)
		_node.Memo = value
	}
	if value, ok := tc.mutation.CreatedAt(); ok {
		_spec.SetField(tunnel.FieldCreatedAt, field.TypeTime, value)
		_node.CreatedAt = value
	}
	if value, ok := tc.mutation.UpdatedAt(); ok {
		_spec.SetField(tunnel.FieldUpdatedAt, field.TypeTime, value)
		_node.UpdatedAt = value
	}
	return _node, _spec
}

// TunnelCreateBulk is the builder for creating many Tunnel entities in bulk.
type TunnelCreateBulk struct {
	config
	err      error
	builders []*TunnelCreate
}

// Save creates the Tunnel entities in the database.
func (tcb *TunnelCreateBulk) Save(ctx context.Context) ([]*Tunnel, error) {
	if tcb.err != nil {
		return nil, tcb.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(tcb.builders))
	nodes := make([]*Tunnel, len(tcb.builders))
	mutators := make([]Mutator, len(tcb.builders))
	for i := range tcb.builders {
		func(i int, root context.Context) {
			builder := tcb.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*TunnelMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, tcb.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, tcb.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, tcb.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (tcb *TunnelCreateBulk) SaveX(ctx context.Context) []*Tunnel {
	v, err := tcb.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (tcb *TunnelCreateBulk) Exec(ctx context.Context) error {
	_, err := tcb.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (tcb *TunnelCreateBulk) ExecX(ctx context.Context) {
	if err := tcb.Exec(ctx); err != nil {
		panic(err)
	}
}
