package sqlite

import (
	"context"
	"database/sql"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/palabras/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var sqlNow = squirrel.Expr("CURRENT_TIMESTAMP")

// hasPrefix matches keys starting with prefix without LIKE wildcard escaping.
func hasPrefix(prefix string) squirrel.Sqlizer {
	return squirrel.Expr("substr(key, 1, ?) = ?", utf8.RuneCountInString(prefix), prefix)
}

// freshVersion seeds the stamp of a newly created row from the clock so a
// deleted and recreated key never reissues an old stamp.
func freshVersion() int64 {
	return time.Now().UnixNano()
}

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}
