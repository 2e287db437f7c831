package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
)

// UpsertEntity пишет сущность с upsert по (table_name, partition_key, row_key).
//
// Политика обновления:
//   - is_active и updated_at — всегда из новой записи;
//   - props — Replace: целиком из новой записи, Merge: объединение jsonb (новые ключи побеждают).
func (s *RelationsStorage) UpsertEntity(ctx context.Context, r models.Relation, mode models.UpsertMode) error {
	const op = "storage/postgres/UpsertEntity"

	props := r.Props
	if props == nil {
		props = map[string]any{}
	}

	updatedAt := r.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	propsExpr := "EXCLUDED.props"
	if mode == models.UpsertMerge {
		propsExpr = "relations.props || EXCLUDED.props"
	}

	_, err := s.db.Exec(ctx, `
	INSERT INTO relations (table_name, partition_key, row_key, is_active, props, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (table_name, partition_key, row_key) DO UPDATE
	SET
	is_active = EXCLUDED.is_active,
	props = `+propsExpr+`,
	updated_at = EXCLUDED.updated_at
	`, string(r.Table), r.PartitionKey, r.RowKey, r.IsActive, props, updatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return fmt.Errorf("%s: table %q: %w", op, r.Table, storage.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListEntities возвращает сущности по фильтру. Сортировка: partition_key, row_key.
func (s *RelationsStorage) ListEntities(ctx context.Context, f models.RelationFilter) ([]models.Relation, error) {
	const op = "storage/postgres/ListEntities"

	var (
		where []string
		args  []any
	)

	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Table != "" {
		add("table_name = $%d", string(f.Table))
	}
	if f.PartitionKey != "" {
		add("partition_key = $%d", f.PartitionKey)
	}
	if f.RowKey != "" {
		add("row_key = $%d", f.RowKey)
	}
	if f.OnlyActive {
		where = append(where, "is_active")
	}

	query := `SELECT table_name, partition_key, row_key, is_active, props, updated_at FROM relations`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY partition_key, row_key"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Relation, error) {
		var (
			r     models.Relation
			table string
		)
		if err := row.Scan(&table, &r.PartitionKey, &r.RowKey, &r.IsActive, &r.Props, &r.UpdatedAt); err != nil {
			return r, err
		}
		r.Table = models.RelationTable(table)
		r.UpdatedAt = r.UpdatedAt.UTC()
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: scan rows: %w", op, err)
	}

	return out, nil
}
