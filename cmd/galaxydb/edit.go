package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wrenholt/galaxydb/internal/editor"
	"github.com/wrenholt/galaxydb/internal/survey"
)

var editCmd = &cobra.Command{
	Use:   "edit <system>",
	Short: "Interactively fix planet length and habitability rank in the raw survey",
	Long: `Edit walks every body of the named system in the raw survey file and
prompts for replacement planet length and habitability rank values. Pressing
Enter keeps the current value. The survey file is rewritten only when
something changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	raw, err := survey.Load(cfg.SurveyPath())
	if err != nil {
		return err
	}

	ed := editor.New(cmd.InOrStdin(), cmd.OutOrStdout())
	changed, err := ed.EditSystem(raw, args[0])
	if err != nil {
		return err
	}
	if !changed {
		log.Info("no changes made")
		return nil
	}

	if err := raw.Save(cfg.SurveyPath()); err != nil {
		return err
	}
	log.Info("survey updated", zap.String("path", cfg.SurveyPath()))
	return nil
}
