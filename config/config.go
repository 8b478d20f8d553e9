package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath    = "data-path"
	ConfigWordList    = "word-list"
	ConfigSaveDir     = "save-dir"
	ConfigStatsDB     = "stats-db"
	ConfigSeed        = "seed"
	ConfigDebug       = "debug"
	ConfigHistoryFile = "history-file"
)

// Config is a thin wrapper around a viper instance. Settings come from, in
// order of precedence: command-line flags, HANGMAN_* environment variables,
// an optional config.yaml in the data path (see ReadConfigFile), and the
// defaults below.
type Config struct {
	*viper.Viper
}

func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDataPath, "./data")
	c.SetDefault(ConfigWordList, "words.txt")
	c.SetDefault(ConfigSaveDir, "saved_games")
	c.SetDefault(ConfigStatsDB, "hangman.db")
	c.SetDefault(ConfigSeed, int64(0))
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigHistoryFile, "/tmp/hangman_readline.tmp")
}

// Load parses args and the environment into the config.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("hangman", pflag.ContinueOnError)
	fs.String(ConfigDataPath, "./data", "directory holding the word list, saves and stats")
	fs.String(ConfigWordList, "words.txt", "word list, one word per line")
	fs.String(ConfigSaveDir, "saved_games", "directory for saved games")
	fs.String(ConfigStatsDB, "hangman.db", "sqlite database for finished-game statistics")
	fs.Int64(ConfigSeed, 0, "seed for word selection; 0 picks a random seed")
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.String(ConfigHistoryFile, "/tmp/hangman_readline.tmp", "readline history file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("hangman")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return nil
}

// ReadConfigFile merges config.yaml from the data path, if there is one.
// Call it after AdjustRelativePaths so the file is looked up in the same
// place as the word list. The data path itself cannot be set by the file.
func (c *Config) ReadConfigFile() error {
	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath(c.GetString(ConfigDataPath))
	err := c.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Debug().Str("file", c.ConfigFileUsed()).Msg("read config file")
	return nil
}

// AdjustRelativePaths makes a relative data path relative to basepath,
// usually the directory of the executable.
func (c *Config) AdjustRelativePaths(basepath string) {
	dp := c.GetString(ConfigDataPath)
	if !filepath.IsAbs(dp) {
		c.Set(ConfigDataPath, filepath.Join(basepath, dp))
	}
}

func (c *Config) resolve(key string) string {
	p := c.GetString(key)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.GetString(ConfigDataPath), p)
}

func (c *Config) WordListPath() string { return c.resolve(ConfigWordList) }
func (c *Config) SaveDir() string      { return c.resolve(ConfigSaveDir) }
func (c *Config) StatsDBPath() string  { return c.resolve(ConfigStatsDB) }

// SanitizedSettings returns the settings for logging purposes.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
