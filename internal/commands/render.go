package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/statements/internal/accounts"
	"github.com/cleared-dev/statements/internal/columns"
	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/export"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/statement"
)

type renderOptions struct {
	accountsPath string
	configPath   string
	format       string
	out          string
	hide         []string
	show         []string
	resize       []string
	labels       []string

	beginningCash    string
	cashFlow         string
	actualEndingCash string
}

func newRenderCommand(g *globals) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:       "render <balance-sheet|cash-flow>",
		Short:     "Render a financial statement",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{statement.NameBalanceSheet, statement.NameCashFlow},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), g, cmd.OutOrStdout(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.accountsPath, "accounts", "", "account records (.csv, .json, .db); default $"+config.EnvAccounts)
	f.StringVar(&opts.configPath, "config", "", "report configuration; default $"+config.EnvConfig+" or "+config.DefaultFile)
	f.StringVar(&opts.format, "format", string(export.FormatText), "output format: text, csv or xlsx")
	f.StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	f.StringSliceVar(&opts.hide, "hide", nil, "column keys to hide")
	f.StringSliceVar(&opts.show, "show", nil, "column keys to show")
	f.StringArrayVar(&opts.resize, "resize", nil, "resize a column by px, as key=delta (repeatable)")
	f.StringArrayVar(&opts.labels, "label", nil, "caption shown above the table, as key=value (repeatable)")
	f.StringVar(&opts.beginningCash, "beginning-cash", "", "cash flow: beginning cash (default 0)")
	f.StringVar(&opts.cashFlow, "cash-flow", "", "cash flow: cash flow figure (default net income)")
	f.StringVar(&opts.actualEndingCash, "actual-ending-cash", "", "cash flow: actual ending cash (default beginning cash + cash flow)")

	return cmd
}

func runRender(ctx context.Context, g *globals, stdout io.Writer, name string, opts renderOptions) error {
	layout, err := statement.Lookup(name)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(g, opts.configPath)
	if err != nil {
		return err
	}
	sc, err := cfg.Statement(name)
	if err != nil {
		return err
	}
	schema, err := sc.Schema()
	if err != nil {
		return fmt.Errorf("statement %s: %w", name, err)
	}

	path := opts.accountsPath
	if path == "" {
		path = g.env.AccountsPath
	}
	if path == "" {
		return fmt.Errorf("no account records: pass --accounts or set %s", config.EnvAccounts)
	}
	svc, err := accounts.Load(ctx, path, schema)
	if err != nil {
		return err
	}
	g.logger.Debug("loaded accounts", zap.String("path", path), zap.Int("count", len(svc.All())))

	state := columns.NewState(schema)
	if err := applyColumnOptions(ctx, g.logger, state, opts); err != nil {
		return err
	}

	figures, err := parseFigures(schema, opts)
	if err != nil {
		return err
	}

	snap := state.Snapshot()
	st := statement.AssembleRecords(layout, svc.All(), snap, figures)
	for _, e := range st.Errors {
		g.logger.Warn("statement section failed", zap.String("statement", name), zap.Error(e))
	}
	if layout.Balance[0] != "" && st.Err() == nil && !st.Balanced() {
		g.logger.Warn("statement does not balance", zap.String("statement", name))
	}

	title := st.Title
	if sc.Title != "" {
		title = sc.Title
	}
	table := export.NewTable(title, snap, st.Rows)
	for _, kv := range opts.labels {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --label %q: want key=value", kv)
		}
		table.Labels = append(table.Labels, export.Label{Name: sc.Label(key, key), Value: value})
	}

	if err := writeTable(stdout, opts.out, format, table); err != nil {
		return err
	}
	g.logger.Debug("rendered statement", zap.String("statement", name), zap.Int("rows", len(st.Rows)))

	if err := st.Err(); err != nil {
		return fmt.Errorf("%s rendered with errors: %w", name, err)
	}
	return nil
}

func loadConfig(g *globals, path string) (*config.Config, error) {
	if path == "" {
		path = g.env.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if g.env.LogLevel == "" && cfg.Logging.Level != "" {
		if err := g.setLogLevel(cfg.Logging.Level); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// applyColumnOptions replays --hide, --show and --resize through the column
// controllers. Unknown and locked columns are logged and skipped.
func applyColumnOptions(ctx context.Context, logger *zap.Logger, state *columns.State, opts renderOptions) error {
	vis := columns.NewVisibilityController(state, logger)
	for _, set := range []struct {
		keys    []string
		visible bool
	}{{opts.hide, false}, {opts.show, true}} {
		for _, key := range set.keys {
			if err := vis.Set(key, set.visible); err != nil && !skippable(err) {
				return err
			}
		}
	}

	rc := columns.NewResizeController(state, logger)
	defer rc.Close()
	for _, kv := range opts.resize {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --resize %q: want key=delta", kv)
		}
		delta, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid --resize %q: %w", kv, err)
		}

		events := make(chan columns.PointerEvent, 2)
		events <- columns.PointerEvent{Kind: columns.PointerMove, DeltaX: delta}
		events <- columns.PointerEvent{Kind: columns.PointerRelease}
		close(events)
		if err := rc.Follow(ctx, key, events); err != nil {
			if skippable(err) {
				logger.Warn("ignoring resize", zap.String("column", key), zap.Error(err))
				continue
			}
			return err
		}
	}
	return nil
}

func skippable(err error) bool {
	return errors.Is(err, columns.ErrUnknownColumn) ||
		errors.Is(err, columns.ErrToggleLocked) ||
		errors.Is(err, columns.ErrResizeLocked)
}

func parseFigures(schema model.Schema, opts renderOptions) (statement.Figures, error) {
	figures := statement.Figures{}
	for _, f := range []struct {
		flag, raw, key string
	}{
		{"beginning-cash", opts.beginningCash, statement.KeyBeginningCash},
		{"cash-flow", opts.cashFlow, statement.KeyCashFlow},
		{"actual-ending-cash", opts.actualEndingCash, statement.KeyActualEndingCash},
	} {
		if f.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(f.raw, ",", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", f.flag, f.raw, err)
		}
		figures[f.key] = statement.Uniform(schema, d)
	}
	return figures, nil
}

func writeTable(stdout io.Writer, out string, format export.Format, table export.Table) error {
	if out == "" {
		return export.Write(stdout, format, table)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	if format == export.FormatText {
		tw := export.NewTextWriter(f)
		tw.Plain = true
		err = tw.Write(table)
	} else {
		err = export.Write(f, format, table)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
