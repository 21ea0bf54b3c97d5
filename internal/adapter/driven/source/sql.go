package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

// loadSQL runs the configured query and keeps the result set as a raw table.
func (r *SourceRepositoryImpl) loadSQL(ctx context.Context, ref entity.SourceRef) (entity.RawTable, error) {
	switch ref.SQLDriver {
	case "sqlite", "pgx":
	default:
		return entity.RawTable{}, fmt.Errorf("%s: %w", ref.SQLDriver, types.ErrUnsupportedDriver)
	}

	db, err := sql.Open(ref.SQLDriver, ref.SQLDSN)
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("error opening %s database: %w", ref.SQLDriver, err)
	}
	defer db.Close()

	return queryTable(ctx, db, ref.SQLQuery)
}

func queryTable(ctx context.Context, db *sql.DB, query string) (entity.RawTable, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("error running sales query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("error reading result columns: %w", err)
	}

	table := entity.RawTable{Columns: columns, Rows: []map[string]any{}}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return entity.RawTable{}, fmt.Errorf("error scanning sales row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return entity.RawTable{}, fmt.Errorf("error iterating sales rows: %w", err)
	}

	return table, nil
}
