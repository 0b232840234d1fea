package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// listPage runs a count query plus one page of a select query, applying the
// skip/limit rules shared by every list endpoint: a limit of zero or less
// returns every match as a single page, otherwise skip = limit*(page-1) and
// pages = ceil(count/limit). The select query must already order by
// created_at descending.
func listPage[T any](
	ctx context.Context,
	pool *pgxpool.Pool,
	countQuery, selectQuery string,
	args []any,
	page, limit int,
	scan func(pgx.Rows) (T, error),
) (model.Page[T], error) {
	if page < 1 {
		page = 1
	}

	var count int
	if err := pool.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		return model.Page[T]{}, fmt.Errorf("failed to count rows: %w", err)
	}

	query := selectQuery
	if limit > 0 {
		skip := limit * (page - 1)
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", selectQuery, limit, skip)
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return model.Page[T]{}, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return model.Page[T]{}, fmt.Errorf("failed to scan row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return model.Page[T]{}, fmt.Errorf("error iterating rows: %w", err)
	}

	return model.NewPage(items, page, limit, count), nil
}
