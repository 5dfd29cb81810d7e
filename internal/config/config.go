// Package config provides configuration management for AnimRig
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Physics   PhysicsConfig   `mapstructure:"physics"`
	Animation AnimationConfig `mapstructure:"animation"`
	Window    WindowConfig    `mapstructure:"window"`
	Control   ControlConfig   `mapstructure:"control"`
}

// PhysicsConfig tunes the soft-body simulation
type PhysicsConfig struct {
	Gravity      float64 `mapstructure:"gravity"`       // downward acceleration, m/s^2
	Damping      float64 `mapstructure:"damping"`       // velocity retained per step, 0-1
	SolverPasses int     `mapstructure:"solver_passes"` // constraint relaxation rounds per frame
	PinnedCount  int     `mapstructure:"pinned_count"`  // anchored particles per strand group
}

// AnimationConfig tunes expression and idle motion
type AnimationConfig struct {
	ExpressionSpeed    float64 `mapstructure:"expression_speed"`
	BlinkMinGap        float64 `mapstructure:"blink_min_gap"` // seconds
	BlinkMaxGap        float64 `mapstructure:"blink_max_gap"` // seconds
	BlinkDuration      float64 `mapstructure:"blink_duration"`
	BreathingRate      float64 `mapstructure:"breathing_rate"` // cycles per second
	BreathingAmplitude float64 `mapstructure:"breathing_amplitude"`
	FingerSmoothing    float64 `mapstructure:"finger_smoothing"`
}

// WindowConfig configures the render window
type WindowConfig struct {
	Title     string `mapstructure:"title"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	VSync     bool   `mapstructure:"vsync"`
	MSAA      int    `mapstructure:"msaa"`
	Frameless bool   `mapstructure:"frameless"`
}

// ControlConfig configures the WebSocket command server
type ControlConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:      9.81,
			Damping:      0.99,
			SolverPasses: 1,
			PinnedCount:  10,
		},
		Animation: AnimationConfig{
			ExpressionSpeed:    2.0,
			BlinkMinGap:        3.0,
			BlinkMaxGap:        6.0,
			BlinkDuration:      0.2,
			BreathingRate:      0.25,
			BreathingAmplitude: 0.02,
			FingerSmoothing:    10.0,
		},
		Window: WindowConfig{
			Title:     "AnimRig",
			Width:     800,
			Height:    600,
			VSync:     true,
			MSAA:      4,
			Frameless: false,
		},
		Control: ControlConfig{
			Enabled:    true,
			ListenAddr: "localhost:9120",
		},
	}
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return cfg, err
	}

	configDir := filepath.Join(homeDir, ".animrig")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return cfg, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("ANIMRIG")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, err
		}
		// Config file not found, use defaults and create one
		if err := Save(cfg); err != nil {
			return cfg, err
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes the configuration to file
func Save(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(homeDir, ".animrig")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	viper.Set("physics", cfg.Physics)
	viper.Set("animation", cfg.Animation)
	viper.Set("window", cfg.Window)
	viper.Set("control", cfg.Control)

	configPath := filepath.Join(configDir, "config.yaml")
	return viper.WriteConfigAs(configPath)
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".animrig"), nil
}
