package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/export"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/report"
	"github.com/cleared-dev/statements/internal/statement"
)

func newColumnsCommand(g *globals) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "columns <balance-sheet|cash-flow>",
		Short: "List a statement's configured columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, g, args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "report configuration")

	return cmd
}

var columnListing = []export.Column{
	{ColumnSpec: model.ColumnSpec{Key: "key", Label: "KEY", IsLabel: true}, Width: 160},
	{ColumnSpec: model.ColumnSpec{Key: "label", Label: "LABEL"}, Width: 176},
	{ColumnSpec: model.ColumnSpec{Key: "width", Label: "WIDTH", Align: model.AlignRight}, Width: 48},
	{ColumnSpec: model.ColumnSpec{Key: "align", Label: "ALIGN"}, Width: 56},
	{ColumnSpec: model.ColumnSpec{Key: "kind", Label: "KIND"}, Width: 72},
	{ColumnSpec: model.ColumnSpec{Key: "shown", Label: "SHOWN"}, Width: 48},
	{ColumnSpec: model.ColumnSpec{Key: "flags", Label: "FLAGS"}, Width: 240},
}

func runColumns(cmd *cobra.Command, g *globals, name, configPath string) error {
	if _, err := statement.Lookup(name); err != nil {
		return err
	}
	cfg, err := loadConfig(g, configPath)
	if err != nil {
		return err
	}
	sc, err := cfg.Statement(name)
	if err != nil {
		return err
	}
	schema, err := sc.Schema()
	if err != nil {
		return err
	}

	labelKey := schema.LabelKey()
	table := export.Table{Columns: columnListing}
	for _, c := range schema.Columns {
		var flags string
		add := func(on bool, flag string) {
			if !on {
				return
			}
			if flags != "" {
				flags += ","
			}
			flags += flag
		}
		add(c.Key == labelKey, "label")
		add(c.Aggregatable, "aggregatable")
		add(c.ToggleLocked, "toggle-locked")
		add(c.ResizeLocked, "resize-locked")

		values := []string{c.Key, c.Label, strconv.Itoa(c.Width), string(c.Align), string(c.Kind), strconv.FormatBool(c.Visible), flags}
		row := report.Row{Kind: report.KindDetail}
		for i, col := range columnListing {
			row.Cells = append(row.Cells, report.Cell{Key: col.Key, Text: values[i], Align: col.Align})
		}
		table.Rows = append(table.Rows, row)
	}

	return export.NewTextWriter(cmd.OutOrStdout()).Write(table)
}
