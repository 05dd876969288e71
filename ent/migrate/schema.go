// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// TunnelsColumns holds the columns for the "tunnels" table.
	TunnelsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "subdomain", Type: field.TypeString, Unique: true},
		{Name: "auth_token", Type: field.TypeString, Size: 64},
		{Name: "memo", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// TunnelsTable holds the schema information for the "tunnels" table.
	TunnelsTable = &schema.Table{
		Name:       "tunnels",
		Columns:    TunnelsColumns,
		PrimaryKey: []*schema.Column{TunnelsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "tunnel_auth_token",
				Unique:  true,
				Columns: []*schema.Column{TunnelsColumns[2]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		TunnelsTable,
	}
)

func init() {
}
