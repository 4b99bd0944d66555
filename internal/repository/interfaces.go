package repository

import (
	"context"
	"errors"

	"github.com/vytor/palabras/internal/models"
)

// ErrVersionConflict is returned by Swap when a guarded key changed since it
// was read.
var ErrVersionConflict = errors.New("version conflict")

// ErrEmptyPrefix is returned by bulk operations given an empty prefix, which
// would otherwise match every key in the table.
var ErrEmptyPrefix = errors.New("empty key prefix")

// KVWrite is a guarded write. ExpectedVersion 0 means the key must not exist.
type KVWrite struct {
	Key             string
	Value           string
	ExpectedVersion int64
}

// KVRepository handles raw key-value data access
type KVRepository interface {
	Get(ctx context.Context, key string) (*models.KVEntry, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]models.KVEntry, error)
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
	// Replace removes every key under prefix and writes values in one transaction.
	Replace(ctx context.Context, prefix string, values map[string]string) error
	// Swap applies all writes atomically or none of them.
	Swap(ctx context.Context, writes []KVWrite) error
}
