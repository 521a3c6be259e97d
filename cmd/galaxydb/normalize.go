package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wrenholt/galaxydb/internal/normalize"
	"github.com/wrenholt/galaxydb/internal/survey"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Clean the raw survey file into the canonical galaxy file",
	Long: `Normalize reads the raw survey file, validates and cleans every body
record, and writes the canonical galaxy file sorted by system and body name.
Recoverable oddities (unparseable counts, day lengths, biome percentages)
are repaired with a logged warning; anything else stops the run so the bad
record can be fixed at the source.`,
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	raw, err := survey.Load(cfg.SurveyPath())
	if err != nil {
		return err
	}

	g, err := normalize.New(log).Galaxy(raw)
	if err != nil {
		return err
	}

	if err := g.WriteFile(cfg.GalaxyPath()); err != nil {
		return err
	}
	log.Info("galaxy written",
		zap.String("path", cfg.GalaxyPath()),
		zap.Int("bodies", len(g)),
		zap.Int("systems", len(g.Systems())))
	return nil
}
