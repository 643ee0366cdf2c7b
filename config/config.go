package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/meysamhadeli/tierlist/constants/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCacheEntry holds cached configuration with metadata
type configCacheEntry struct {
	config  *Config
	modTime time.Time
}

// Global cache for configuration files
var (
	configCache = make(map[string]*configCacheEntry)
	cacheMutex  sync.RWMutex
)

// Config represents the structure of the configuration file
type Config struct {
	Version     string `mapstructure:"version"`
	DataPath    string `mapstructure:"data_path"`
	Theme       string `mapstructure:"theme"`
	DisplayCap  int    `mapstructure:"display_cap"`
	EnableCache bool   `mapstructure:"enable_cache"`
	CacheDir    string `mapstructure:"cache_dir"`
	Today       string `mapstructure:"today"`
	WordWrap    int    `mapstructure:"word_wrap"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:     "0.3.0",
	DataPath:    filepath.Join("assets", "llm-tierlist.json"),
	Theme:       "dracula",
	DisplayCap:  2,
	EnableCache: true,
	CacheDir:    ".cache",
	Today:       "",
	WordWrap:    80,
}

const configName = "tierlist-config"

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType(GetConfigFileType(cfgFile))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if rootCmd != nil {
		bindFlags(v, rootCmd)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if config.DataPath != "" && !filepath.IsAbs(config.DataPath) {
		config.DataPath = filepath.Join(cwd, config.DataPath)
	}
	if config.CacheDir != "" && !filepath.IsAbs(config.CacheDir) {
		config.CacheDir = filepath.Join(cwd, config.CacheDir)
	}

	return &config, nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("data_path", DefaultConfig.DataPath)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("display_cap", DefaultConfig.DisplayCap)
	v.SetDefault("enable_cache", DefaultConfig.EnableCache)
	v.SetDefault("cache_dir", DefaultConfig.CacheDir)
	v.SetDefault("today", DefaultConfig.Today)
	v.SetDefault("word_wrap", DefaultConfig.WordWrap)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("data_path", "TIERLIST_DATA_PATH")
	_ = v.BindEnv("theme", "TIERLIST_THEME")
	_ = v.BindEnv("display_cap", "TIERLIST_DISPLAY_CAP")
	_ = v.BindEnv("enable_cache", "TIERLIST_ENABLE_CACHE")
	_ = v.BindEnv("cache_dir", "TIERLIST_CACHE_DIR")
	_ = v.BindEnv("today", "TIERLIST_TODAY")
	_ = v.BindEnv("word_wrap", "TIERLIST_WORD_WRAP")
}

// bindFlags binds the CLI flags to configuration values. Only flags the user actually set
// override the file and environment.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	for key, name := range map[string]string{
		"data_path":    "data",
		"theme":        "theme",
		"display_cap":  "display_cap",
		"enable_cache": "enable_cache",
		"cache_dir":    "cache_dir",
		"today":        "today",
		"word_wrap":    "word_wrap",
	} {
		flag := rootCmd.Flag(name)
		if flag != nil && flag.Changed {
			_ = v.BindPFlag(key, flag)
		}
	}
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().StringP("data", "d", DefaultConfig.DataPath, "Path to the tier list document (JSON).")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Chroma style used to highlight exported JSON (e.g., 'dracula', 'monokai', 'github').")
	rootCmd.PersistentFlags().Int("display_cap", DefaultConfig.DisplayCap, "How many models each tier shows; 0 shows all of them.")
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Enable or disable caching of the computed timeline.")
	rootCmd.PersistentFlags().String("cache_dir", DefaultConfig.CacheDir, "Directory holding the timeline cache.")
	rootCmd.PersistentFlags().String("today", DefaultConfig.Today, "Override today's date (YYYY-MM-DD); the timeline ends on this day.")
	rootCmd.PersistentFlags().Int("word_wrap", DefaultConfig.WordWrap, "Column at which model reasoning is wrapped.")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}

// findConfigFile returns the explicit config path or the first default config file in cwd.
func findConfigFile(cwd string) string {
	if cfgFile != "" {
		return cfgFile
	}
	for _, ext := range []string{"yaml", "yml", "json"} {
		path := filepath.Join(cwd, fmt.Sprintf("%s.%s", configName, ext))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigWithCache loads configuration with caching support
func LoadConfigWithCache(rootCmd *cobra.Command, cwd string) (*Config, error) {
	configFilePath := findConfigFile(cwd)
	if configFilePath == "" {
		fmt.Fprintln(os.Stderr, lipgloss.Muted.Render("No configuration file found, using defaults"))
		return LoadConfigs(rootCmd, cwd)
	}

	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		return LoadConfigs(rootCmd, cwd)
	}

	cacheMutex.RLock()
	if cached, exists := configCache[configFilePath]; exists {
		if fileInfo.ModTime().Equal(cached.modTime) {
			cacheMutex.RUnlock()
			return cached.config, nil
		}
	}
	cacheMutex.RUnlock()

	config, err := LoadConfigs(rootCmd, cwd)
	if err != nil {
		return nil, err
	}

	cacheMutex.Lock()
	configCache[configFilePath] = &configCacheEntry{
		config:  config,
		modTime: fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return config, nil
}

// ClearConfigCache clears all cached configuration files
func ClearConfigCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	configCache = make(map[string]*configCacheEntry)
}

// GetConfigCacheStats returns statistics about the configuration cache
func GetConfigCacheStats() map[string]interface{} {
	cacheMutex.RLock()
	defer cacheMutex.RUnlock()

	entries := make([]string, 0, len(configCache))
	for path := range configCache {
		entries = append(entries, path)
	}

	return map[string]interface{}{
		"cached_files":  len(configCache),
		"cache_entries": entries,
	}
}

// TodayOrNow parses the configured override of today's date, falling back to now.
func (c *Config) TodayOrNow() (time.Time, error) {
	if c.Today == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, c.Today)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid today %q: %w", c.Today, err)
	}
	return t, nil
}
