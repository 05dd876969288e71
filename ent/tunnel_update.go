// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/dalbodeule/loco-gate/ent/predicate"
	"github.com/dalbodeule/loco-gate/ent/tunnel"
)

// TunnelUpdate is the builder for updating Tunnel entities.
type TunnelUpdate struct {
	config
	hooks    []Hook
	mutation *TunnelMutation
}

// Where appends a list predicates to the TunnelUpdate builder.
func (tu *TunnelUpdate) Where(ps ...predicate.Tunnel) *TunnelUpdate {
	tu.mutation.Where(ps...)
	return tu
}

// SetAuthToken sets the "auth_token" field.
func (tu *TunnelUpdate) SetAuthToken(s string) *TunnelUpdate {
	tu.mutation.SetAuthToken(s)
	return tu
}

// SetNillableAuthToken sets the "auth_token" field if the given value is not nil.
func (tu *TunnelUpdate) SetNillableAuthToken(s *string) *TunnelUpdate {
	if s != nil {
		tu.SetAuthToken(*s)
	}
	return tu
}

// SetMemo sets the "memo" field.
func (tu *TunnelUpdate) SetMemo(s string) *TunnelUpdate {
	tu.mutation.SetMemo(s)
	return tu
}

// SetNillableMemo sets the "memo" field if the given value is not nil.
func (tu *TunnelUpdate) SetNillableMemo(s *string) *TunnelUpdate {
	if s != nil {
		tu.SetMemo(*s)
	}
	return tu
}

// SetCreatedAt sets the "created_at" field.
func (tu *TunnelUpdate) SetCreatedAt(t time.Time) *TunnelUpdate {
	tu.mutation.SetCreatedAt(t)
	return tu
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (tu *TunnelUpdate) SetNillableCreatedAt(t *time.Time) *TunnelUpdate {
	if t != nil {
		tu.SetCreatedAt(*t)
	}
	return tu
}

// SetUpdatedAt sets the "updated_at" field.
func (tu *TunnelUpdate) SetUpdatedAt(t time.Time) *TunnelUpdate {
	tu.mutation.SetUpdatedAt(t)
	return tu
}

// Mutation returns the TunnelMutation object of the builder.
func (tu *TunnelUpdate) Mutation() *TunnelMutation {
	return tu.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (tu *TunnelUpdate) Save(ctx context.Context) (int, error) {
	tu.defaults()
	return withHooks(ctx, tu.sqlSave, tu.mutation, tu.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (tu *TunnelUpdate) SaveX(ctx context.Context) int {
	affected, err := tu.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (tu *TunnelUpdate) Exec(ctx context.Context) error {
	_, err := tu.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (tu *TunnelUpdate) ExecX(ctx context.Context) {
	if err := tu.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (tu *TunnelUpdate) defaults() {
	if _, ok := tu.mutation.UpdatedAt(); !ok {
		v := tunnel.UpdateDefaultUpdatedAt()
		tu.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (tu *TunnelUpdate) check() error {
	if v, ok := tu.mutation.AuthToken(); ok {
		if err := tunnel.AuthTokenValidator(v); err != nil {
			return &ValidationError{Name: "auth_token", err: fmt.Errorf(`ent: validator failed for field "Tunnel.auth_token": %w`, err)}
		}
	}
	return nil
}

func (tu *TunnelUpdate) sqlSave(ctx context.Context) (n int, err error) {
	if err := tu.check(); err != nil {
		return n, err
	}
	_spec := sqlgraph.NewUpdateSpec(tunnel.Table, tunnel.Columns, sqlgraph.NewFieldSpec(tunnel.FieldID, field.TypeUUID))
	if ps := tu.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := tu.mutation.AuthToken(); ok {
		_spec.SetField(tunnel.FieldAuthToken, field.TypeString, value)
	}
	if value, ok := tu.mutation.Memo(); ok {
		_spec.SetField(tunnel.FieldMemo, field.TypeString, value)
	}
	if value, ok := tu.mutation.CreatedAt(); ok {
		_spec.SetField(tunnel.FieldCreatedAt, field.TypeTime, value)
	}
	if value, ok := tu.mutation.UpdatedAt(); ok {
		_spec.SetField(tunnel.FieldUpdatedAt, field.TypeTime, value)
	}
	if n, err = sqlgraph.UpdateNodes(ctx, tu.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{tunnel.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	tu.mutation.done = true
	return n, nil
}

// TunnelUpdateOne is the builder for updating a single Tunnel entity.
type TunnelUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *TunnelMutation
}

// SetAuthToken sets the "auth_token" field.
func (tuo *TunnelUpdateOne) SetAuthToken(s string) *TunnelUpdateOne {
	tuo.mutation.SetAuthToken(s)
	return tuo
}

// SetNillableAuthToken sets the "auth_token" field if the given value is not nil.
func (tuo *TunnelUpdateOne) SetNillableAuthToken(s *string) *TunnelUpdateOne {
	if s != nil {
		tuo.SetAuthToken(*s)
	}
	return tuo
}

// SetMemo sets the "memo" field.
func (tuo *TunnelUpdateOne) SetMemo(s string) *TunnelUpdateOne {
	tuo.mutation.SetMemo(s)
	return tuo
}

// SetNillableMemo sets the "memo" field if the given value is not nil.
func (tuo *TunnelUpdateOne) SetNillableMemo(s *string) *TunnelUpdateOne {
	if s != nil {
		tuo.SetMemo(*s)
	}
	return tuo
}

// SetCreatedAt sets the "created_at" field.
func (tuo *TunnelUpdateOne) SetCreatedAt(t time.Time) *TunnelUpdateOne {
	tuo.mutation.SetCreatedAt(t)
	return tuo
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (tuo *TunnelUpdateOne) SetNillableCreatedAt(t *time.Time) *TunnelUpdateOne {
	if t != nil {
		tuo.SetCreatedAt(*t)
	}
	return tuo
}

// SetUpdatedAt sets the "updated_at" field.
func (tuo *TunnelUpdateOne) SetUpdatedAt(t time.Time) *TunnelUpdateOne {
	tuo.mutation.SetUpdatedAt(t)
	return tuo
}

// Mutation returns the TunnelMutation object of the builder.
func (tuo *TunnelUpdateOne) Mutation() *TunnelMutation {
	return tuo.mutation
}

// Where appends a list predicates to the TunnelUpdate builder.
func (tuo *TunnelUpdateOne) Where(ps ...predicate.Tunnel) *TunnelUpdateOne {
	tuo.mutation.Where(ps...)
	return tuo
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (tuo *TunnelUpdateOne) Select(field string, fields ...string) *TunnelUpdateOne {
	tuo.fields = append([]string{field}, fields...)
	return tuo
}

// Save executes the query and returns the updated Tunnel entity.
func (tuo *TunnelUpdateOne) Save(ctx context.Context) (*Tunnel, error) {
	tuo.defaults()
	return withHooks(ctx, tuo.sqlSave, tuo.mutation, tuo.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (tuo *TunnelUpdateOne) SaveX(ctx context.Context) *Tunnel {
	node, err := tuo.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (tuo *TunnelUpdateOne) Exec(ctx context.Context) error {
	_, err := tuo.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (tuo *TunnelUpdateOne) ExecX(ctx context.Context) {
	if err := tuo.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (tuo *TunnelUpdateOne) defaults() {
	if _, ok := tuo.mutation.UpdatedAt(); !ok {
		v := tunnel.UpdateDefaultUpdatedAt()
		tuo.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (tuo *TunnelUpdateOne) check() error {
	if v, ok := tuo.mutation.AuthToken(); ok {
		if err := tunnel.AuthTokenValidator(v); err != nil {
			return &ValidationError{Name: "auth_token", err: fmt.Errorf(`ent: validator failed for field "Tunnel.auth_token": %w`, err)}
		}
	}
	return nil
}

func (tuo *TunnelUpdateOne) sqlSave(ctx context.Context) (_node *Tunnel, err error) {
	if err := tuo.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(tunnel.Table, tunnel.Columns, sqlgraph.NewFieldSpec(tunnel.FieldID, field.TypeUUID))
	id, ok := tuo.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "Tunnel.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := tuo.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, tunnel.FieldID)
		for _, f := range fields {
			if !tunnel.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != tunnel.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := tuo.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := tuo.mutation.AuthToken(); ok {
		_spec.SetField(tunnel.FieldAuthToken, field.TypeString, value)
	}
	if value, ok := tuo.mutation.Memo(); ok {
		_spec.SetField(tunnel.FieldMemo, field.TypeString, value)
	}
	if value, ok := tuo.mutation.CreatedAt(); ok {
		_spec.SetField(tunnel.FieldCreatedAt, field.TypeTime, value)
	}
	if value, ok := tuo.mutation.UpdatedAt(); ok {
		_spec.SetField(tunnel.FieldUpdatedAt, field.TypeTime, value)
	}
	_node = &Tunnel{config: tuo.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, tuo.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{tunnel.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	tuo.mutation.done = true
	return _node, nil
}
