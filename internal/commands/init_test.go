package commands_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/accounts"
	"github.com/cleared-dev/statements/internal/config"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "statements-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "statements")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/statements")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// runStatements runs the binary in dir with no STATEMENTS_* variables
// inherited from the test process.
func runStatements(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "STATEMENTS_") {
			cmd.Env = append(cmd.Env, kv)
		}
	}
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_WritesProject(t *testing.T) {
	dir := t.TempDir()
	out, err := runStatements(t, dir, "init", "project")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Initialized statements project")

	root := filepath.Join(dir, "project")
	for _, f := range []string{config.DefaultFile, ".env", filepath.Join("accounts", "chart.csv")} {
		_, err := os.Stat(filepath.Join(root, f))
		require.NoError(t, err, "%s should exist", f)
	}

	env, err := os.ReadFile(filepath.Join(root, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "STATEMENTS_ACCOUNTS=accounts/chart.csv")
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runStatements(t, dir, "init")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, []string{"balance-sheet", "cash-flow"}, cfg.Names())
}

func TestInit_Accounts(t *testing.T) {
	for _, format := range []string{"csv", "json", "sqlite"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			out, err := runStatements(t, dir, "init", "--accounts-format", format)
			require.NoError(t, err, out)

			cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
			require.NoError(t, err)
			fields, err := cfg.AllColumns()
			require.NoError(t, err)

			ext := map[string]string{"csv": "csv", "json": "json", "sqlite": "db"}[format]
			svc, err := accounts.Load(context.Background(), filepath.Join(dir, "accounts", "chart."+ext), fields)
			require.NoError(t, err)
			assert.Len(t, svc.All(), len(accounts.SampleChart()))
		})
	}
}

func TestInit_RejectsUnknownFormat(t *testing.T) {
	_, err := runStatements(t, t.TempDir(), "init", "--accounts-format", "xml")
	require.Error(t, err)
}
