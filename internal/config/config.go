// Package config loads report configuration: per-statement column schemas,
// titles and labels, plus environment defaults for the CLI.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/statements/internal/model"
)

// Environment variables consulted by Env.
const (
	EnvConfig   = "STATEMENTS_CONFIG"
	EnvAccounts = "STATEMENTS_ACCOUNTS"
	EnvLogLevel = "STATEMENTS_LOG_LEVEL"
)

// DefaultFile is the config file name written by init.
const DefaultFile = "statements.yaml"

// Config represents the top-level statements.yaml configuration.
type Config struct {
	Logging    LoggingConfig              `yaml:"logging"`
	Statements map[string]StatementConfig `yaml:"statements"`
}

// LoggingConfig sets the CLI log level.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
}

// StatementConfig is the column schema and wording of one statement.
type StatementConfig struct {
	Title         string          `yaml:"title,omitempty"`
	Columns       []ColumnConfig  `yaml:"columns"`
	Customization []Customization `yaml:"customization,omitempty"`
}

// ColumnConfig is one column as stored in the config file.
type ColumnConfig struct {
	Key             string `yaml:"key"`
	Name            string `yaml:"name"`
	Width           int    `yaml:"width,omitempty"`
	TextAlign       string `yaml:"textAlign,omitempty"` // text-start, text-end, text-center
	Display         *bool  `yaml:"display,omitempty"`   // nil = shown
	CheckBoxDisable bool   `yaml:"checkBoxDisable,omitempty"`
	ResizeDisable   bool   `yaml:"resizeDisable,omitempty"`
	Kind            string `yaml:"kind,omitempty"`
	Aggregatable    bool   `yaml:"aggregatable,omitempty"`
	Label           bool   `yaml:"label,omitempty"`
}

// Customization is a caller-facing report label, shown above the table.
type Customization struct {
	Key         string `yaml:"key"`
	DisplayName string `yaml:"displayName"`
}

// Load reads a statements.yaml file from disk. JSON files parse too.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	for name, sc := range cfg.Statements {
		if _, err := sc.Schema(); err != nil {
			return nil, fmt.Errorf("statement %s: %w", name, err)
		}
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Statement returns the configuration of the named statement.
func (c *Config) Statement(name string) (StatementConfig, error) {
	sc, ok := c.Statements[name]
	if !ok {
		return StatementConfig{}, fmt.Errorf("no configuration for statement %q (have %s)", name, strings.Join(c.Names(), ", "))
	}
	return sc, nil
}

// Names returns the configured statement names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Statements))
	for n := range c.Statements {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AllColumns returns every configured column once, in statement name order.
// It is the field layout of account files shared by all statements.
func (c *Config) AllColumns() (model.Schema, error) {
	var all model.Schema
	seen := make(map[string]bool)
	for _, name := range c.Names() {
		schema, err := c.Statements[name].Schema()
		if err != nil {
			return model.Schema{}, fmt.Errorf("statement %s: %w", name, err)
		}
		for _, col := range schema.Columns {
			if !seen[col.Key] {
				seen[col.Key] = true
				all.Columns = append(all.Columns, col)
			}
		}
	}
	return all, nil
}

// Schema converts the column list into a validated model.Schema.
func (sc StatementConfig) Schema() (model.Schema, error) {
	schema := model.Schema{Columns: make([]model.ColumnSpec, 0, len(sc.Columns))}
	for _, c := range sc.Columns {
		spec, err := c.Spec()
		if err != nil {
			return model.Schema{}, err
		}
		schema.Columns = append(schema.Columns, spec)
	}
	if err := schema.Validate(); err != nil {
		return model.Schema{}, err
	}
	return schema, nil
}

// Spec converts one configured column.
func (c ColumnConfig) Spec() (model.ColumnSpec, error) {
	align, err := ParseAlign(c.TextAlign)
	if err != nil {
		return model.ColumnSpec{}, fmt.Errorf("column %s: %w", c.Key, err)
	}
	kind := model.ColumnKind(c.Kind)
	switch kind {
	case "":
		kind = model.ColumnText
	case model.ColumnText, model.ColumnCurrency, model.ColumnDate:
	default:
		return model.ColumnSpec{}, fmt.Errorf("column %s: unknown kind %q", c.Key, c.Kind)
	}
	return model.ColumnSpec{
		Key:          c.Key,
		Label:        c.Name,
		Width:        c.Width,
		Align:        align,
		Visible:      c.Display == nil || *c.Display,
		ResizeLocked: c.ResizeDisable,
		ToggleLocked: c.CheckBoxDisable,
		Kind:         kind,
		Aggregatable: c.Aggregatable,
		IsLabel:      c.Label,
	}, nil
}

// ParseAlign maps a textAlign class (or a plain side name) to an alignment.
func ParseAlign(s string) (model.Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text-start", "text-left", "left":
		return model.AlignLeft, nil
	case "text-end", "text-right", "right":
		return model.AlignRight, nil
	case "text-center", "center":
		return model.AlignCenter, nil
	default:
		return "", fmt.Errorf("unknown textAlign %q", s)
	}
}

// Label returns the customization label for key, or fallback.
func (sc StatementConfig) Label(key, fallback string) string {
	for _, c := range sc.Customization {
		if c.Key == key && c.DisplayName != "" {
			return c.DisplayName
		}
	}
	return fallback
}

// Default returns the configuration written for a new project.
func Default() *Config {
	hidden := false
	name := ColumnConfig{Key: "accountName", Name: "Account Name", Width: 320, TextAlign: "text-start", CheckBoxDisable: true, Label: true}
	glCode := ColumnConfig{Key: "glCode", Name: "GL Code", Width: 120, TextAlign: "text-start", Display: &hidden}
	money := func(key, label string) ColumnConfig {
		return ColumnConfig{Key: key, Name: label, Width: 180, TextAlign: "text-end", Kind: string(model.ColumnCurrency), Aggregatable: true}
	}

	return &Config{
		Logging: LoggingConfig{Level: "warn"},
		Statements: map[string]StatementConfig{
			"balance-sheet": {
				Title:   "Balance Sheet",
				Columns: []ColumnConfig{name, glCode, money("balance", "Balance")},
				Customization: []Customization{
					{Key: "propertyName", DisplayName: "Property"},
					{Key: "asOf", DisplayName: "As of"},
				},
			},
			"cash-flow": {
				Title:   "Cash Flow",
				Columns: []ColumnConfig{name, glCode, money("selectedPeriod", "Selected Period"), money("fiscalYearToDate", "Fiscal Year To Date")},
				Customization: []Customization{
					{Key: "propertyName", DisplayName: "Property"},
					{Key: "period", DisplayName: "Period"},
				},
			},
		},
	}
}

// Env holds CLI defaults taken from the environment.
type Env struct {
	ConfigPath   string
	AccountsPath string
	LogLevel     string
}

// LoadEnv reads an optional .env file, then the STATEMENTS_* variables.
// A missing default .env is ignored; an explicit path must exist.
func LoadEnv(envPath ...string) (Env, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return Env{}, fmt.Errorf("loading .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}
	return Env{
		ConfigPath:   getEnvOrDefault(EnvConfig, DefaultFile),
		AccountsPath: os.Getenv(EnvAccounts),
		LogLevel:     os.Getenv(EnvLogLevel),
	}, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
