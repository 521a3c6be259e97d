// Package loader writes the resource catalog and canonical galaxy into a
// relational store. The store is rebuilt from scratch on every run, so the
// loader never updates rows, it only inserts.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wrenholt/galaxydb/internal/galaxy"
	"github.com/wrenholt/galaxydb/internal/store"
)

// CommitPolicy is the transaction granularity of a load.
type CommitPolicy string

const (
	// CommitPerBody commits after the catalog, after the systems, and after
	// each body's rows. A failed run keeps everything loaded up to the
	// failing body.
	CommitPerBody CommitPolicy = "per-body"

	// CommitPerRun loads everything in one transaction: either the whole
	// galaxy lands or none of it does.
	CommitPerRun CommitPolicy = "per-run"
)

// ParseCommitPolicy converts a configuration string to a CommitPolicy.
func ParseCommitPolicy(s string) (CommitPolicy, error) {
	switch p := CommitPolicy(strings.ToLower(s)); p {
	case CommitPerBody, CommitPerRun:
		return p, nil
	}
	return "", fmt.Errorf("invalid commit policy %q (must be %q or %q)", s, CommitPerBody, CommitPerRun)
}

// Options control a load run.
type Options struct {
	// Commit is the transaction granularity (default CommitPerBody).
	Commit CommitPolicy
	// Duplicates is the resource name collision policy for the index
	// (default reject).
	Duplicates galaxy.DuplicatePolicy
}

// Loader writes canonical data into one store.
type Loader struct {
	store store.Store
	log   *zap.Logger
	opts  Options
}

// New creates a Loader. Zero option fields get their defaults.
func New(st store.Store, log *zap.Logger, opts Options) *Loader {
	if opts.Commit == "" {
		opts.Commit = CommitPerBody
	}
	if opts.Duplicates == "" {
		opts.Duplicates = galaxy.RejectDuplicates
	}
	return &Loader{store: st, log: log, opts: opts}
}

type bodyKey struct {
	System string
	Name   string
}

// Load installs the schema and inserts the catalog, the systems, and every
// body with its dependent rows, in that order. Short resource references are
// resolved to full names through the catalog index before insertion.
//
// A body whose (system, name) pair was already loaded this run is skipped
// together with its dependent rows, with a warning; everything else that
// goes wrong aborts the load.
func (l *Loader) Load(ctx context.Context, ddl string, catalog []galaxy.Resource, g galaxy.Galaxy) (err error) {
	if err := l.store.InstallSchema(ctx, ddl); err != nil {
		return err
	}

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, r := range catalog {
		if err = tx.InsertResource(ctx, r); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("schema violation: resource %q inserted twice: %w", r.Name, err)
			}
			return fmt.Errorf("failed to insert resource %q: %w", r.Name, err)
		}
	}

	// The index is built after the catalog is stored so a collision the
	// schema cannot express (a short name matching another entry's full
	// name) is still caught here.
	idx, err := galaxy.BuildIndex(catalog, l.opts.Duplicates, l.log)
	if err != nil {
		return err
	}
	if tx, err = l.checkpoint(ctx, tx); err != nil {
		return err
	}

	counts := g.SystemCounts()
	for _, name := range g.Systems() {
		if err = tx.InsertSystem(ctx, name, counts[name]); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("schema violation: system %q inserted twice: %w", name, err)
			}
			return fmt.Errorf("failed to insert system %q: %w", name, err)
		}
	}
	if tx, err = l.checkpoint(ctx, tx); err != nil {
		return err
	}

	seen := make(map[bodyKey]struct{}, len(g))
	for _, b := range g {
		key := bodyKey{System: b.System, Name: b.Name}
		if _, dup := seen[key]; dup {
			// First record wins; the duplicate and its dependent rows are dropped
			l.log.Warn("duplicate body, skipping",
				zap.String("system", b.System),
				zap.String("body", b.Name))
			continue
		}
		seen[key] = struct{}{}

		if err = l.loadBody(ctx, tx, idx, b); err != nil {
			return err
		}
		if tx, err = l.checkpoint(ctx, tx); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// checkpoint commits the open transaction and starts the next one when the
// policy is per-body. Under per-run it hands the transaction back untouched.
func (l *Loader) checkpoint(ctx context.Context, tx store.Tx) (store.Tx, error) {
	if l.opts.Commit != CommitPerBody {
		return tx, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return tx, fmt.Errorf("failed to commit: %w", err)
	}
	next, err := l.store.Begin(ctx)
	if err != nil {
		return tx, err
	}
	return next, nil
}

func (l *Loader) loadBody(ctx context.Context, tx store.Tx, idx *galaxy.ResourceIndex, b galaxy.Body) error {
	if err := tx.InsertBody(ctx, b); err != nil {
		return fmt.Errorf("failed to insert body %s/%s: %w", b.System, b.Name, err)
	}
	for _, trait := range b.Traits {
		if err := tx.InsertTrait(ctx, b.System, b.Name, trait); err != nil {
			return fmt.Errorf("failed to insert trait %q for %s/%s: %w", trait, b.System, b.Name, err)
		}
	}
	for _, ref := range b.Resources {
		full, err := idx.Resolve(ref)
		if err != nil {
			return fmt.Errorf("body %s/%s: %w", b.System, b.Name, err)
		}
		if err := tx.InsertBodyResource(ctx, b.System, b.Name, full); err != nil {
			return fmt.Errorf("failed to insert resource %q for %s/%s: %w", full, b.System, b.Name, err)
		}
	}
	for _, organic := range b.Domesticable {
		if err := tx.InsertOrganic(ctx, b.System, b.Name, organic, true); err != nil {
			return fmt.Errorf("failed to insert organic %q for %s/%s: %w", organic.Name, b.System, b.Name, err)
		}
	}
	for _, organic := range b.Gatherable {
		if err := tx.InsertOrganic(ctx, b.System, b.Name, organic, false); err != nil {
			return fmt.Errorf("failed to insert organic %q for %s/%s: %w", organic.Name, b.System, b.Name, err)
		}
	}
	for _, biome := range b.Biomes {
		if err := tx.InsertBiome(ctx, b.System, b.Name, biome); err != nil {
			return fmt.Errorf("failed to insert biome %q for %s/%s: %w", biome.Name, b.System, b.Name, err)
		}
	}
	return nil
}
