package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/repository"
)

const kvTable = "kv_entries"

type kvRepository struct {
	db *sql.DB
}

// NewKVRepository creates a new KVRepository implementation
func NewKVRepository(db *sql.DB) repository.KVRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) (*models.KVEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")

	query, args, err := sqlBuilder.
		Select("key", "value", "version", "updated_at").
		From(kvTable).
		Where("key = ?", key).
		ToSql()
	if err != nil {
		return nil, err
	}

	var e models.KVEntry
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&e.Key, &e.Value, &e.Version, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key not found: %s", key)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get key %s: %v", key, err)
		return nil, err
	}
	return &e, nil
}

func (r *kvRepository) Put(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("putting key: %s (%d bytes)", key, len(value))

	query, args, err := upsert(key, value)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to put key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting key: %s", key)

	query, args, err := sqlBuilder.Delete(kvTable).Where("key = ?", key).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *kvRepository) List(ctx context.Context, prefix string) ([]models.KVEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("listing keys with prefix: %s", prefix)

	query, args, err := sqlBuilder.
		Select("key", "value", "version", "updated_at").
		From(kvTable).
		Where(hasPrefix(prefix)).
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list keys: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.KVEntry
	for rows.Next() {
		var e models.KVEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.Version, &e.UpdatedAt); err != nil {
			log.Error("failed to scan kv row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d keys", len(entries))
	return entries, rows.Err()
}

func (r *kvRepository) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting keys with prefix: %s", prefix)
	if prefix == "" {
		return 0, repository.ErrEmptyPrefix
	}

	query, args, err := sqlBuilder.Delete(kvTable).Where(hasPrefix(prefix)).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete prefix %s: %v", prefix, err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *kvRepository) Replace(ctx context.Context, prefix string, values map[string]string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("replacing %d keys under prefix: %s", len(values), prefix)
	if prefix == "" {
		return repository.ErrEmptyPrefix
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := sqlBuilder.Delete(kvTable).Where(hasPrefix(prefix)).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear prefix: %w", err)
		}

		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			query, args, err := upsert(k, values[k])
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("write %s: %w", k, err)
			}
		}
		return nil
	})
}

func (r *kvRepository) Swap(ctx context.Context, writes []repository.KVWrite) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("swapping %d keys", len(writes))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, w := range writes {
			if w.ExpectedVersion == 0 {
				query, args, err := sqlBuilder.
					Insert(kvTable).
					Columns("key", "value", "version").
					Values(w.Key, w.Value, freshVersion()).
					Suffix("ON CONFLICT(key) DO NOTHING").
					ToSql()
				if err != nil {
					return err
				}
				res, err := tx.ExecContext(ctx, query, args...)
				if err != nil {
					return fmt.Errorf("insert %s: %w", w.Key, err)
				}
				if n, _ := res.RowsAffected(); n == 0 {
					log.Warn("swap rejected: %s already exists", w.Key)
					return repository.ErrVersionConflict
				}
				continue
			}

			query, args, err := sqlBuilder.
				Update(kvTable).
				Set("value", w.Value).
				Set("version", w.ExpectedVersion+1).
				Set("updated_at", sqlNow).
				Where("key = ? AND version = ?", w.Key, w.ExpectedVersion).
				ToSql()
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("update %s: %w", w.Key, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				log.Warn("swap rejected: %s is no longer at version %d", w.Key, w.ExpectedVersion)
				return repository.ErrVersionConflict
			}
		}
		return nil
	})
}

func upsert(key, value string) (string, []interface{}, error) {
	return sqlBuilder.
		Insert(kvTable).
		Columns("key", "value", "version").
		Values(key, value, freshVersion()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, version = " + kvTable + ".version + 1, updated_at = CURRENT_TIMESTAMP").
		ToSql()
}
