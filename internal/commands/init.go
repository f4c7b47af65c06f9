package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/accounts"
	"github.com/cleared-dev/statements/internal/config"
)

func newInitCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default report configuration and a sample chart of accounts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd, absDir, format)
		},
	}

	cmd.Flags().StringVar(&format, "accounts-format", "csv", "sample chart encoding: csv, json or sqlite")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, dir, format string) error {
	var chartFile string
	switch accounts.Format(format) {
	case accounts.FormatCSV:
		chartFile = "chart.csv"
	case accounts.FormatJSON:
		chartFile = "chart.json"
	case accounts.FormatSQLite:
		chartFile = "chart.db"
	default:
		return fmt.Errorf("unknown accounts format %q (want csv, json or sqlite)", format)
	}

	if err := os.MkdirAll(filepath.Join(dir, "accounts"), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	// Write statements.yaml.
	cfg := config.Default()
	if err := config.Save(filepath.Join(dir, config.DefaultFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the sample chart with every configured column.
	fields, err := cfg.AllColumns()
	if err != nil {
		return err
	}
	chartPath := filepath.Join("accounts", chartFile)
	svc := accounts.NewService(accounts.SampleChart())
	if err := svc.Save(ctx, filepath.Join(dir, chartPath), fields); err != nil {
		return fmt.Errorf("writing sample chart: %w", err)
	}

	// Point the CLI at both files.
	env := fmt.Sprintf("%s=%s\n%s=%s\n", config.EnvConfig, config.DefaultFile, config.EnvAccounts, chartPath)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		return fmt.Errorf("writing .env: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized statements project at %s\n", dir)
	return nil
}
