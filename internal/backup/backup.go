// Package backup writes rotating JSON snapshots of the learner's progress to
// a local directory.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vytor/palabras/internal/logger"
)

const (
	filePrefix = "palabras-backup-"
	fileSuffix = ".json"
	stampFmt   = "20060102-150405.000"
)

// Exporter produces the document a backup stores.
type Exporter interface {
	ExportAll(ctx context.Context) ([]byte, error)
}

type Backupper struct {
	src  Exporter
	dir  string
	keep int
	now  func() time.Time
}

type Option func(*Backupper)

func WithClock(now func() time.Time) Option {
	return func(b *Backupper) {
		b.now = now
	}
}

// New returns a Backupper writing into dir and keeping the newest keep files.
func New(src Exporter, dir string, keep int, opts ...Option) *Backupper {
	if keep < 1 {
		keep = 1
	}
	b := &Backupper{src: src, dir: dir, keep: keep, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run writes one backup and prunes old ones. It returns the new file's path.
func (b *Backupper) Run(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("backup")

	data, err := b.src.ExportAll(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := filePrefix + strings.Replace(b.now().UTC().Format(stampFmt), ".", "", 1) + fileSuffix
	path := filepath.Join(b.dir, name)

	// backups become visible only once fully written
	tmp, err := os.CreateTemp(b.dir, ".tmp-"+filePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close backup: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename backup: %w", err)
	}
	log.Info("wrote %s (%d bytes)", path, len(data))

	removed, err := b.prune()
	if err != nil {
		log.Warn("failed to prune old backups: %v", err)
	} else if removed > 0 {
		log.Debug("pruned %d old backups", removed)
	}
	return path, nil
}

// List returns the backup files in dir, oldest first.
func (b *Backupper) List() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasPrefix(n, filePrefix) || !strings.HasSuffix(n, fileSuffix) {
			continue
		}
		out = append(out, filepath.Join(b.dir, n))
	}
	sort.Strings(out)
	return out, nil
}

func (b *Backupper) prune() (int, error) {
	files, err := b.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for len(files)-removed > b.keep {
		if err := os.Remove(files[removed]); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
