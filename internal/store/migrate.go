package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const kvTableName = "kv_entries"

var (
	// kvColumns holds the columns for the "kv_entries" table.
	kvColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// kvTable holds the schema information for the "kv_entries" table.
	kvTable = &schema.Table{
		Name:       kvTableName,
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
	}

	tables = []*schema.Table{kvTable}
)

// migrate creates or upgrades every table the store owns.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}
