package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wrenholt/galaxydb/internal/galaxy"
	"github.com/wrenholt/galaxydb/internal/loader"
	"github.com/wrenholt/galaxydb/internal/store"
)

var (
	loadDBURL      string
	loadCommit     string
	loadDuplicates string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the resource catalog and canonical galaxy into a database",
	Long: `Load rebuilds the relational database from the resource catalog and the
canonical galaxy file. The target is selected by URL: sqlite://path,
postgres://... or mysql://.... A schema.sql next to the data replaces the
built-in schema and is executed verbatim.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadDBURL, "db-url", "", "Database URL (default: sqlite://<data-dir>/galaxy.db)")
	loadCmd.Flags().StringVar(&loadCommit, "commit", "", "Commit granularity: per-body or per-run")
	loadCmd.Flags().StringVar(&loadDuplicates, "duplicate-resources", "", "Catalog name collision policy: reject or overwrite")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if loadDBURL != "" {
		cfg.DatabaseURL = loadDBURL
	}
	if loadCommit != "" {
		cfg.Load.Commit = loadCommit
	}
	if loadDuplicates != "" {
		cfg.Load.DuplicateResources = loadDuplicates
	}

	commit, err := loader.ParseCommitPolicy(cfg.Load.Commit)
	if err != nil {
		return err
	}
	duplicates, err := galaxy.ParseDuplicatePolicy(cfg.Load.DuplicateResources)
	if err != nil {
		return err
	}

	catalog, err := galaxy.ReadResources(cfg.ResourcesPath())
	if err != nil {
		return err
	}
	g, err := galaxy.ReadGalaxy(cfg.GalaxyPath())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.EffectiveDatabaseURL(), &store.Options{Recreate: true})
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close database: %v\n", err)
		}
	}()

	ddl, err := schemaText(cfg.SchemaPath(), st)
	if err != nil {
		return err
	}

	l := loader.New(st, log, loader.Options{Commit: commit, Duplicates: duplicates})
	if err := l.Load(ctx, ddl, catalog, g); err != nil {
		return err
	}

	log.Info("galaxy loaded",
		zap.String("database", cfg.EffectiveDatabaseURL()),
		zap.Int("resources", len(catalog)),
		zap.Int("bodies", len(g)),
		zap.Int("systems", len(g.Systems())))
	return nil
}

// schemaText returns the contents of the schema file next to the data, or
// the store's built-in schema when no such file exists.
func schemaText(path string, st store.Store) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return st.DefaultSchema(), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read schema: %w", err)
	}
	return string(data), nil
}
