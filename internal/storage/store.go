// Package storage is the namespaced key-value store that owns the persisted
// user profile and exercise history.
//
// Reads never fail the caller: a missing, corrupt or unreadable value falls
// back to a default and the problem is logged. Writes report success as a
// bool. Every read goes back to the medium; nothing is cached.
//
// The store does not coordinate separate processes or browser tabs on its
// own. Multi-key updates go through Load and Commit, which guard each key
// with a version stamp so a stale snapshot is rejected with ErrConflict
// instead of silently overwriting a newer one.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/repository"
)

const (
	KeyUserData = "userData"
	KeyProgress = "progress"
)

// ErrConflict means the stored state changed after the snapshot was loaded.
var ErrConflict = errors.New("storage: snapshot is stale")

type Store struct {
	repo   repository.KVRepository
	prefix string
	now    func() time.Time
	log    *logger.Logger
}

type Option func(*Store)

// WithClock overrides the time source used for defaults and export dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// DefaultPrefix namespaces keys when New is given an empty prefix.
const DefaultPrefix = "palabras_"

// New returns a store keeping every key under prefix, or DefaultPrefix when
// prefix is empty.
func New(repo repository.KVRepository, prefix string, opts ...Option) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	s := &Store{
		repo:   repo,
		prefix: prefix,
		now:    time.Now,
		log:    logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithPrefix("store")
	return s
}

func (s *Store) Prefix() string {
	return s.prefix
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) logFor(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != logger.Default() {
		return l.WithPrefix("store")
	}
	return s.log
}

// Get decodes the value stored under key into dest, which must be a non-nil
// pointer. It reports false and leaves dest untouched when the key is
// missing, its value is corrupt, or the medium fails.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	log := s.logFor(ctx)

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		log.Error("get %s: destination must be a non-nil pointer, got %T", key, dest)
		return false
	}

	entry, err := s.repo.Get(ctx, s.key(key))
	if err != nil {
		log.Warn("get %s: read failed, using default: %v", key, err)
		return false
	}
	if entry == nil {
		return false
	}

	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal([]byte(entry.Value), fresh.Interface()); err != nil {
		log.Warn("get %s: corrupt value, using default: %v", key, err)
		return false
	}
	rv.Elem().Set(fresh.Elem())
	return true
}

// Set serialises value under key.
func (s *Store) Set(ctx context.Context, key string, value any) bool {
	log := s.logFor(ctx)

	data, err := json.Marshal(value)
	if err != nil {
		log.Error("set %s: cannot encode value: %v", key, err)
		return false
	}
	if err := s.repo.Put(ctx, s.key(key), string(data)); err != nil {
		log.Error("set %s: write failed: %v", key, err)
		return false
	}
	return true
}

// Remove deletes key; removing a missing key succeeds.
func (s *Store) Remove(ctx context.Context, key string) bool {
	if err := s.repo.Delete(ctx, s.key(key)); err != nil {
		s.logFor(ctx).Error("remove %s: %v", key, err)
		return false
	}
	return true
}

// Initialize writes the default profile and an empty history when they are
// absent. Existing values are left alone.
func (s *Store) Initialize(ctx context.Context) bool {
	log := s.logFor(ctx)

	var writes []repository.KVWrite
	for _, k := range []string{KeyUserData, KeyProgress} {
		entry, err := s.repo.Get(ctx, s.key(k))
		if err != nil {
			log.Error("initialize: cannot read %s: %v", k, err)
			return false
		}
		if entry != nil {
			continue
		}
		var value any = models.ExerciseHistory{Exercises: []models.ExerciseRecord{}}
		if k == KeyUserData {
			value = models.NewUserProfile(s.now())
		}
		data, err := json.Marshal(value)
		if err != nil {
			log.Error("initialize: cannot encode %s: %v", k, err)
			return false
		}
		writes = append(writes, repository.KVWrite{Key: s.key(k), Value: string(data)})
	}
	if len(writes) == 0 {
		return true
	}

	if err := s.repo.Swap(ctx, writes); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			// another writer initialised first
			return true
		}
		log.Error("initialize: write failed: %v", err)
		return false
	}
	log.Info("initialized default profile")
	return true
}

// ResetAll deletes every namespaced key and re-creates the default state.
func (s *Store) ResetAll(ctx context.Context) bool {
	log := s.logFor(ctx)

	n, err := s.repo.DeletePrefix(ctx, s.prefix)
	if err != nil {
		log.Error("reset: delete failed: %v", err)
		return false
	}
	log.Info("reset removed %d keys", n)
	return s.Initialize(ctx)
}

// Snapshot is a private copy of the stored state plus the version stamps it
// was read at. Mutate it freely and hand it to Commit.
type Snapshot struct {
	Profile models.UserProfile
	History models.ExerciseHistory

	profileVersion int64
	historyVersion int64
}

// Load reads a fresh snapshot. Missing or corrupt values are replaced by
// defaults; committing such a snapshot overwrites the damaged value.
func (s *Store) Load(ctx context.Context) Snapshot {
	snap := Snapshot{
		Profile: models.NewUserProfile(s.now()),
		History: models.ExerciseHistory{Exercises: []models.ExerciseRecord{}},
	}
	snap.profileVersion = s.read(ctx, KeyUserData, &snap.Profile)
	snap.historyVersion = s.read(ctx, KeyProgress, &snap.History)
	snap.Profile.Normalize()
	if snap.History.Exercises == nil {
		snap.History.Exercises = []models.ExerciseRecord{}
	}
	return snap
}

// read decodes key into dest and returns the version it was read at, or 0
// when the key does not exist.
func (s *Store) read(ctx context.Context, key string, dest any) int64 {
	log := s.logFor(ctx)

	entry, err := s.repo.Get(ctx, s.key(key))
	if err != nil {
		log.Warn("load %s: read failed, using default: %v", key, err)
		// a failed read must not let Commit blindly create the key
		return -1
	}
	if entry == nil {
		return 0
	}

	rv := reflect.ValueOf(dest)
	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal([]byte(entry.Value), fresh.Interface()); err != nil {
		log.Warn("load %s: corrupt value, using default: %v", key, err)
		return entry.Version
	}
	rv.Elem().Set(fresh.Elem())
	return entry.Version
}

// Commit writes the snapshot back atomically, provided nothing else wrote
// either key since it was loaded.
func (s *Store) Commit(ctx context.Context, snap Snapshot) error {
	log := s.logFor(ctx)

	if snap.profileVersion < 0 || snap.historyVersion < 0 {
		return fmt.Errorf("commit: snapshot was loaded from a failing medium: %w", ErrConflict)
	}

	profile, err := json.Marshal(snap.Profile)
	if err != nil {
		return fmt.Errorf("commit: encode profile: %w", err)
	}
	history, err := json.Marshal(snap.History)
	if err != nil {
		return fmt.Errorf("commit: encode history: %w", err)
	}

	err = s.repo.Swap(ctx, []repository.KVWrite{
		{Key: s.key(KeyUserData), Value: string(profile), ExpectedVersion: snap.profileVersion},
		{Key: s.key(KeyProgress), Value: string(history), ExpectedVersion: snap.historyVersion},
	})
	if errors.Is(err, repository.ErrVersionConflict) {
		log.Warn("commit rejected: stored progress changed since it was loaded")
		return ErrConflict
	}
	if err != nil {
		log.Error("commit failed: %v", err)
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Profile returns the stored profile, or the default one.
func (s *Store) Profile(ctx context.Context) models.UserProfile {
	return s.Load(ctx).Profile
}
