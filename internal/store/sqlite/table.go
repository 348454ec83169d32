package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
)

// table is the Collection for one kind.
type table[T model.Resource] struct {
	s     *Store
	kind  model.Kind
	name  string
	stamp func(T, time.Time) T
	// onDelete runs inside the delete transaction.
	onDelete func(ctx context.Context, tx *sql.Tx, id string) error
}

func newTable[T model.Resource](s *Store, kind model.Kind, name string, stamp func(T, time.Time) T) *table[T] {
	return &table[T]{s: s, kind: kind, name: name, stamp: stamp}
}

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	rows, err := t.s.db.QueryContext(ctx, fmt.Sprintf(`SELECT body FROM %s ORDER BY seq`, t.name))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.name, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var item T
		if err := json.Unmarshal(body, &item); err != nil {
			return nil, fmt.Errorf("decoding %s row: %w", t.kind, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (t *table[T]) Get(ctx context.Context, id string) (T, error) {
	var zero, item T
	var body []byte
	err := t.s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT body FROM %s WHERE id = ?`, t.name), id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, &store.NotFoundError{Kind: t.kind, ID: id}
	}
	if err != nil {
		return zero, fmt.Errorf("reading %s %s: %w", t.kind, id, err)
	}
	if err := json.Unmarshal(body, &item); err != nil {
		return zero, fmt.Errorf("decoding %s %s: %w", t.kind, id, err)
	}
	return item, nil
}

func (t *table[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := t.s.opts.Wait(ctx); err != nil {
		return zero, err
	}
	item = t.stamp(item, t.s.opts.Now())

	err := t.s.inTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, t.name), item.ResourceID()).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%s %s: %w", t.kind, item.ResourceID(), store.ErrExists)
		}
		return insert(ctx, tx, t.name, item)
	})
	if err != nil {
		return zero, err
	}
	t.s.opts.Logger.Info("resource created", "kind", t.kind, "id", item.ResourceID(), "name", item.ResourceName())
	return item, nil
}

func (t *table[T]) Update(ctx context.Context, item T) (T, error) {
	var zero T
	if err := t.s.opts.Wait(ctx); err != nil {
		return zero, err
	}
	body, err := json.Marshal(item)
	if err != nil {
		return zero, fmt.Errorf("encoding %s: %w", t.kind, err)
	}
	res, err := t.s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET name = ?, body = ? WHERE id = ?`, t.name),
		item.ResourceName(), body, item.ResourceID())
	if err != nil {
		return zero, fmt.Errorf("updating %s %s: %w", t.kind, item.ResourceID(), err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return zero, &store.NotFoundError{Kind: t.kind, ID: item.ResourceID()}
	}
	t.s.opts.Logger.Info("resource updated", "kind", t.kind, "id", item.ResourceID(), "name", item.ResourceName())
	return item, nil
}

func (t *table[T]) Delete(ctx context.Context, id string) error {
	if err := t.s.opts.Wait(ctx); err != nil {
		return err
	}
	var name string
	err := t.s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT name FROM %s WHERE id = ?`, t.name), id).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return &store.NotFoundError{Kind: t.kind, ID: id}
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.name), id); err != nil {
			return err
		}
		if t.onDelete != nil {
			return t.onDelete(ctx, tx, id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	t.s.opts.Logger.Info("resource deleted", "kind", t.kind, "id", id, "name", name)
	return nil
}

func insert[T model.Resource](ctx context.Context, tx *sql.Tx, name string, item T) error {
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", item.ResourceID(), err)
	}
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, name, body) VALUES (?, ?, ?)`, name),
		item.ResourceID(), item.ResourceName(), body)
	return err
}

func insertAll[T model.Resource](ctx context.Context, tx *sql.Tx, name string, items []T) error {
	for _, item := range items {
		if err := insert(ctx, tx, name, item); err != nil {
			return fmt.Errorf("seeding %s: %w", name, err)
		}
	}
	return nil
}
