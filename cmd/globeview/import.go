package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/globeview/globeview/internal/importer"
	"github.com/globeview/globeview/internal/store"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file...]",
		Short: "Import intelligence updates from CSV report files",
		Long: `Imports updates from the given CSV files, or from the two
fixed-name breaking-report files in the working directory when no
arguments are given. Malformed rows are skipped with a warning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args)
		},
	}
}

func runImport(files []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Data.Dir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		files = importer.Files
	}

	total := 0
	for _, file := range files {
		count, err := importer.ImportFile(st, file, logger)
		if err != nil {
			return fmt.Errorf("import %s: %w", file, err)
		}
		logger.Info("csv file imported", "file", file, "updates", count)
		total += count
	}

	logger.Info("import complete", "total", total)
	return nil
}
