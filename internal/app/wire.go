package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"checklist/internal/checklist"
	"checklist/internal/config"
	"checklist/internal/kv"
	"checklist/internal/kv/file"
	"checklist/internal/kv/memory"
	"checklist/internal/kv/sealed"
	"checklist/internal/kv/sqlkv"
)

// ErrPassphraseRequired is returned when the stored list is sealed but no
// passphrase is configured.
var ErrPassphraseRequired = errors.New("stored checklist is encrypted; set CHECKLIST_PASSPHRASE")

// Wire bundles the storage backend and the store built on it.
type Wire struct {
	Storage kv.Storage
	Store   *checklist.Store

	closers []func() error
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Wire, error) {
	w := &Wire{}

	storage, err := w.openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Passphrase != "" {
		storage = sealed.New(storage, cfg.Passphrase)
	}

	// Refuse to start rather than let the first save overwrite a value
	// this configuration cannot read.
	if err := checkReadable(storage, cfg.Passphrase != ""); err != nil {
		w.Close()
		return nil, err
	}

	w.Storage = storage
	w.Store = checklist.New(storage, logger)
	return w, nil
}

func (w *Wire) openStorage(ctx context.Context, cfg *config.Config) (kv.Storage, error) {
	dsn := strings.TrimSpace(cfg.Storage)
	switch {
	case dsn == "":
		return file.New(cfg.Dir), nil
	case dsn == config.MemoryStorage:
		return memory.New(), nil
	default:
		db, err := sqlkv.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, db.Close)
		return db, nil
	}
}

// checkReadable fails if a stored list exists but cannot be read under the
// current passphrase setting. Plaintext that is merely malformed is left to
// the store, which falls back to the default tasks.
func checkReadable(storage kv.Storage, sealedMode bool) error {
	b, err := storage.Get(checklist.StorageKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("open %s: %w", checklist.StorageKey, err)
	case !sealedMode && sealed.IsSealed(b):
		return fmt.Errorf("open %s: %w", checklist.StorageKey, ErrPassphraseRequired)
	}
	return nil
}

// Close releases backend resources.
func (w *Wire) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	w.closers = nil
	return first
}
