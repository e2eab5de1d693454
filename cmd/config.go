package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/subcommands"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration.
type Config struct {
	Data    DataConfig
	Backup  BackupConfig
	Suggest SuggestConfig
	Log     LogConfig
	// Today overrides the current date, "YYYY-MM-DD".
	Today string
}

// DataConfig selects where the ledger is kept.
type DataConfig struct {
	Backend string // file or sqlite
	Path    string
}

// BackupConfig selects the backup target: a GCS bucket when Bucket is set,
// the Dir folder otherwise.
type BackupConfig struct {
	Bucket string
	Prefix string
	Dir    string
}

// SuggestConfig configures category suggestions.
type SuggestConfig struct {
	Model  string
	Gemini bool
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string
}

// Backends are the accepted values of data.backend.
var Backends = []string{"file", "sqlite"}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "", "Path to the config file. Defaults to $XDG_CONFIG_HOME/moneymanager/config.toml")
	dataPath    = flag.String("data", "", "Path to the ledger file or database. Overrides data.path")
	dataBackend = flag.String("backend", "", "Storage backend, file or sqlite. Overrides data.backend")
	verbose     = flag.Bool("v", false, "Log debug messages. Overrides log.level")
)

// configDir returns the folder of the default config file.
func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "moneymanager")
}

// dataDir returns the folder of the default ledger.
func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "moneymanager")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "moneymanager")
}

// newViper reads the config file and the MM_ environment variables, then
// applies the global flags.
func newViper() (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("data.backend", "file")
	v.SetDefault("data.path", "")
	v.SetDefault("backup.bucket", "")
	v.SetDefault("backup.prefix", "")
	v.SetDefault("backup.dir", filepath.Join(dataDir(), "backups"))
	v.SetDefault("suggest.model", "gemini-2.5-flash")
	v.SetDefault("suggest.gemini", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("today", "")

	v.SetConfigType("toml")
	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit config file must exist.
		if !errors.As(err, &notFound) && !(*configFile == "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if *dataPath != "" {
		v.Set("data.path", *dataPath)
	}
	if *dataBackend != "" {
		v.Set("data.backend", *dataBackend)
	}
	if *verbose {
		v.Set("log.level", "debug")
	}
	return v, nil
}

// LoadConfig returns the effective configuration.
func LoadConfig() (Config, error) {
	v, err := newViper()
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if !slices.Contains(Backends, c.Data.Backend) {
		return Config{}, fmt.Errorf("invalid data.backend %q, want one of %v", c.Data.Backend, Backends)
	}
	if c.Data.Path == "" {
		name := "ledger.json"
		if c.Data.Backend == "sqlite" {
			name = "ledger.db"
		}
		c.Data.Path = filepath.Join(dataDir(), name)
	}
	return c, nil
}

// newLogger creates the logger at the configured level.
func newLogger(c Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: c.Log.Level == "debug",
		Prefix:          "mm",
	})
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		logger.Warn("invalid log level, using warn", "level", c.Log.Level)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

type configCmd struct {
	init bool
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "show the effective configuration" }
func (*configCmd) Usage() string {
	return `mm config [-init]

  Prints the effective configuration, merged from the config file, the MM_*
  environment variables and the global flags.
  With -init, writes it to the config file if there is none yet.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.init, "init", false, "Write the configuration to the config file if it does not exist.")
}

func (c *configCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	v, err := newViper()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.init {
		path := *configFile
		if path == "" {
			path = filepath.Join(configDir(), "config.toml")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config folder: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := v.SafeWriteConfigAs(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Config written to %s\n", path)
		return subcommands.ExitSuccess
	}

	keys := v.AllKeys()
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(stdout, "%s = %v\n", k, v.Get(k))
	}
	if used := v.ConfigFileUsed(); used != "" {
		fmt.Fprintf(stdout, "\nconfig file: %s\n", used)
	}
	return subcommands.ExitSuccess
}
