// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/dalbodeule/loco-gate/ent/schema"
	"github.com/dalbodeule/loco-gate/ent/tunnel"
	"github.com/google/uuid"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	tunnelFields := schema.Tunnel{}.Fields()
	_ = tunnelFields
	// tunnelDescSubdomain is the schema descriptor for subdomain field.
	tunnelDescSubdomain := tunnelFields[1].Descriptor()
	// tunnel.SubdomainValidator is a validator for the "subdomain" field. It is called by the builders before save.
	tunnel.SubdomainValidator = tunnelDescSubdomain.Validators[0].(func(string) error)
	// tunnelDescAuthToken is the schema descriptor for auth_token field.
	tunnelDescAuthToken := tunnelFields[2].Descriptor()
	// tunnel.AuthTokenValidator is a validator for the "auth_token" field. It is called by the builders before save.
	tunnel.AuthTokenValidator = func() func(string) error {
		validators := tunnelDescAuthToken.Validators
		fns := [...]func(string) error{
			validators[0].(func(string) error),
			validators[1].(func(string) error),
		}
		return func(auth_token string) error {
			for _, fn := range fns {
				if err := fn(auth_token); err != nil {
					return err
				}
			}
			return nil
		}
	}()
	// tunnelDescMemo is the schema descriptor for memo field.
	tunnelDescMemo := tunnelFields[3].Descriptor()
	// tunnel.DefaultMemo holds the default value on creation for the memo field.
	tunnel.DefaultMemo = tunnelDescMemo.Default.(string)
	// tunnelDescCreatedAt is the schema descriptor for created_at field.
	tunnelDescCreatedAt := tunnelFields[4].Descriptor()
	// tunnel.DefaultCreatedAt holds the default value on creation for the created_at field.
	tunnel.DefaultCreatedAt = tunnelDescCreatedAt.Default.(func() time.Time)
	// tunnelDescUpdatedAt is the schema descriptor for updated_at field.
	tunnelDescUpdatedAt := tunnelFields[5].Descriptor()
	// tunnel.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	tunnel.DefaultUpdatedAt = tunnelDescUpdatedAt.Default.(func() time.Time)
	// tunnel.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	tunnel.UpdateDefaultUpdatedAt = tunnelDescUpdatedAt.UpdateDefault.(func() time.Time)
	// tunnelDescID is the schema descriptor for id field.
	tunnelDescID := tunnelFields[0].Descriptor()
	// tunnel.DefaultID holds the default value on creation for the id field.
	tunnel.DefaultID = tunnelDescID.Default.(func() uuid.UUID)
}
