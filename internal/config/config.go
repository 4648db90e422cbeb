// Package config provides configuration management for kicks.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is the counting service the widget was built against.
const DefaultAPIBaseURL = "https://baby-kicks-api.loqmanhakim74.workers.dev"

// Zero display modes.
const (
	// ZeroModeHide shows no chart until the count is above zero.
	ZeroModeHide = "hide"
	// ZeroModeRing shows an empty ring once a fetch has settled at zero.
	ZeroModeRing = "ring"
)

// Config holds all configuration for the kicks application.
type Config struct {
	API           APIConfig          `mapstructure:"api"`
	User          UserConfig         `mapstructure:"user"`
	Display       DisplayConfig      `mapstructure:"display"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// APIConfig holds the counting service settings.
type APIConfig struct {
	BaseURL string   `mapstructure:"base_url"`
	Timeout Duration `mapstructure:"timeout"`
}

// UserConfig holds the default identity.
type UserConfig struct {
	ID    string `mapstructure:"id"`
	Label string `mapstructure:"label"`
}

// DisplayConfig holds widget layout settings.
type DisplayConfig struct {
	ZeroMode    string `mapstructure:"zero_mode"`
	ChartWidth  int    `mapstructure:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height"`
	Compact     bool   `mapstructure:"compact"`
}

// ShowZeroRing reports whether a settled zero count renders an empty ring.
func (d DisplayConfig) ShowZeroRing() bool {
	return strings.EqualFold(d.ZeroMode, ZeroModeRing)
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorAchieved   string `mapstructure:"color_achieved"`
	ColorRemaining  string `mapstructure:"color_remaining"`
	BorderAchieved  string `mapstructure:"border_achieved"`
	BorderRemaining string `mapstructure:"border_remaining"`
	ColorOverlay    string `mapstructure:"color_overlay"`
	ColorShadow     string `mapstructure:"color_shadow"`
	ColorTitle      string `mapstructure:"color_title"`
	ColorCaption    string `mapstructure:"color_caption"`
	ColorHelp       string `mapstructure:"color_help"`
	GradientStart   string `mapstructure:"gradient_start"`
	GradientEnd     string `mapstructure:"gradient_end"`
	IconApp         string `mapstructure:"icon_app"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorAchieved:   "#3498db",
		ColorRemaining:  "#ecf0f1",
		BorderAchieved:  "#2980b9",
		BorderRemaining: "#bdc3c7",
		ColorOverlay:    "#ffffff",
		ColorShadow:     "rgba(0, 0, 0, 0.5)",
		ColorTitle:      "#6B7280",
		ColorCaption:    "#A0AEC0",
		ColorHelp:       "#95A5A6",
		GradientStart:   "#2980b9",
		GradientEnd:     "#3498db",
		IconApp:         "👶",
	}
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds logging settings. An empty file logs to stderr.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Timeout: Duration(10 * time.Second),
		},
		Display: DisplayConfig{
			ZeroMode:    ZeroModeHide,
			ChartWidth:  40,
			ChartHeight: 20,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   false,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: "~/.kicks",
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file and applies
// environment overrides.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from path, creating it with defaults if
// it does not exist, then applies environment overrides.
func LoadFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := expandDataDir(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFileOnly reads path without environment overrides. Commands that write
// the config start from it so transient overrides are not persisted.
func LoadFileOnly(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// DefaultsWithEnv returns the defaults with environment overrides applied,
// for use when the config file cannot be read.
func DefaultsWithEnv() (*Config, error) {
	cfg := DefaultConfig()
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := expandDataDir(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeHook lets Duration and other text types decode from TOML strings.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes the configuration to path.
func SaveTo(configPath string, cfg *Config) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("user.id", cfg.User.ID)
	v.Set("user.label", cfg.User.Label)
	v.Set("display.zero_mode", cfg.Display.ZeroMode)
	v.Set("display.chart_width", cfg.Display.ChartWidth)
	v.Set("display.chart_height", cfg.Display.ChartHeight)
	v.Set("display.compact", cfg.Display.Compact)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("mcp.enabled", cfg.MCP.Enabled)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".kicks", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "kicks.db")
}

// GetLogPath returns the log file used while the dashboard owns the terminal.
func GetLogPath(cfg *Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(cfg.Storage.DataDir, "kicks.log")
}

// Timeout returns the request timeout, falling back to 10s when unset.
func (c *Config) Timeout() time.Duration {
	if c.API.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.API.Timeout)
}

// expandDataDir resolves a leading ~ in the data directory.
func expandDataDir(cfg *Config) error {
	dir := cfg.Storage.DataDir
	if dir != "" && dir != "~" && !strings.HasPrefix(dir, "~/") {
		return nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	if dir == "" || dir == "~" {
		dir = "~/.kicks"
	}
	cfg.Storage.DataDir = filepath.Join(homeDir, strings.TrimPrefix(dir, "~/"))
	return nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultAPIBaseURL)
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("user.id", "")
	v.SetDefault("user.label", "")
	v.SetDefault("display.zero_mode", ZeroModeHide)
	v.SetDefault("display.chart_width", 40)
	v.SetDefault("display.chart_height", 20)
	v.SetDefault("display.compact", false)
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.sound", false)
	v.SetDefault("mcp.enabled", true)
	v.SetDefault("storage.data_dir", "~/.kicks")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	// Theme defaults
	defaults := DefaultThemeConfig()
	v.SetDefault("theme.color_achieved", defaults.ColorAchieved)
	v.SetDefault("theme.color_remaining", defaults.ColorRemaining)
	v.SetDefault("theme.border_achieved", defaults.BorderAchieved)
	v.SetDefault("theme.border_remaining", defaults.BorderRemaining)
	v.SetDefault("theme.color_overlay", defaults.ColorOverlay)
	v.SetDefault("theme.color_shadow", defaults.ColorShadow)
	v.SetDefault("theme.color_title", defaults.ColorTitle)
	v.SetDefault("theme.color_caption", defaults.ColorCaption)
	v.SetDefault("theme.color_help", defaults.ColorHelp)
	v.SetDefault("theme.gradient_start", defaults.GradientStart)
	v.SetDefault("theme.gradient_end", defaults.GradientEnd)
	v.SetDefault("theme.icon_app", defaults.IconApp)
}
