/*
Package config manages TOML config for the cluesolve solver, server and CLI.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// SolverConfig has dispatcher and lexical service options.
type SolverConfig struct {
	SynonymSearchDepth  int `toml:"synonym_search_depth"`
	CharadeSynonymDepth int `toml:"charade_synonym_depth"`
	DefinitionMaxLen    int `toml:"definition_max_len"`
	MaxResults          int `toml:"max_results"`
	SimCacheLimit       int `toml:"sim_cache_limit"`
	SynCacheLimit       int `toml:"syn_cache_limit"`
}

// DictConfig holds the locations of source lists and compiled artifacts.
// Relative names are resolved against DataDir.
type DictConfig struct {
	DataDir           string `toml:"data_dir"`
	WordListFile      string `toml:"wordlist_file"`
	SensesFile        string `toml:"senses_file"`
	AbbreviationsFile string `toml:"abbreviations_file"`
	KeywordsDir       string `toml:"keywords_dir"`
	CategorisedDir    string `toml:"categorised_dir"`
	CompleteDir       string `toml:"complete_dir"`
	CacheDir          string `toml:"cache_dir"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit       int `toml:"max_limit"`
	SolveTimeoutMs int `toml:"solve_timeout_ms"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	ShowTiming   bool `toml:"show_timing"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/cluesolve
// 2. ~/Library/Application Support/cluesolve (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "cluesolve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "cluesolve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/cluesolve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			SynonymSearchDepth:  1,
			CharadeSynonymDepth: 2,
			DefinitionMaxLen:    3,
			MaxResults:          0,
			SimCacheLimit:       200000,
			SynCacheLimit:       20000,
		},
		Dict: DictConfig{
			DataDir:           "data/",
			WordListFile:      "wordlist.txt",
			SensesFile:        "senses.json",
			AbbreviationsFile: "abbreviations.txt",
			KeywordsDir:       "keywords",
			CategorisedDir:    "categorised",
			CompleteDir:       "complete",
			CacheDir:          "cache",
		},
		Server: ServerConfig{
			MaxLimit:       50,
			SolveTimeoutMs: 30000,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			ShowTiming:   true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whichever sections still decode.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "solver"); ok {
		extractSolverConfig(section, &config.Solver)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractSolverConfig(data map[string]any, solver *SolverConfig) {
	if val, ok := utils.ExtractInt64(data, "synonym_search_depth"); ok {
		solver.SynonymSearchDepth = val
	}
	if val, ok := utils.ExtractInt64(data, "charade_synonym_depth"); ok {
		solver.CharadeSynonymDepth = val
	}
	if val, ok := utils.ExtractInt64(data, "definition_max_len"); ok {
		solver.DefinitionMaxLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		solver.MaxResults = val
	}
	if val, ok := utils.ExtractInt64(data, "sim_cache_limit"); ok {
		solver.SimCacheLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "syn_cache_limit"); ok {
		solver.SynCacheLimit = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	fields := map[string]*string{
		"data_dir":           &dict.DataDir,
		"wordlist_file":      &dict.WordListFile,
		"senses_file":        &dict.SensesFile,
		"abbreviations_file": &dict.AbbreviationsFile,
		"keywords_dir":       &dict.KeywordsDir,
		"categorised_dir":    &dict.CategorisedDir,
		"complete_dir":       &dict.CompleteDir,
		"cache_dir":          &dict.CacheDir,
	}
	for key, dst := range fields {
		if val, ok := utils.ExtractString(data, key); ok {
			*dst = val
		}
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "solve_timeout_ms"); ok {
		server.SolveTimeoutMs = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "show_timing"); ok {
		cli.ShowTiming = val
	}
}

// Resolve joins a [dict] file name onto DataDir unless it is already absolute.
func (d DictConfig) Resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.DataDir, name)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the solver values and saves to file
func (c *Config) Update(configPath string, synonymDepth, maxResults *int) error {
	if synonymDepth != nil {
		c.Solver.SynonymSearchDepth = *synonymDepth
	}
	if maxResults != nil {
		c.Solver.MaxResults = *maxResults
	}
	return SaveConfig(c, configPath)
}
