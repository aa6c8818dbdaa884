package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppName names the config directories and the env prefix
const AppName = "sbatch-gen"

// EnvPrefix is the prefix for environment overrides (SBATCH_GEN_*)
const EnvPrefix = "SBATCH_GEN"

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// Keys lists the known configuration keys
var Keys = []string{
	"sinfo_bin",
	"output_dir",
	"color",
	"defaults.mail_user",
	"defaults.mail_type",
	"defaults.cpus",
}

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (SBATCH_GEN_*)
// 3. User config file (~/.config/sbatch-gen/config.yaml)
// 4. System config file (/etc/sbatch-gen/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	for _, dir := range SearchPaths() {
		viper.AddConfigPath(dir)
	}

	// Environment variables, "defaults.mail_user" -> SBATCH_GEN_DEFAULTS_MAIL_USER
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults (lowest priority)
	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// SearchPaths returns the config directories in priority order
func SearchPaths() []string {
	var paths []string
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(userConfigDir, AppName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+AppName))
	}
	paths = append(paths, filepath.Join("/etc", AppName))
	paths = append(paths, ".")
	return paths
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("sinfo_bin", "sinfo")
	viper.SetDefault("output_dir", "")
	viper.SetDefault("color", true)
	viper.SetDefault("defaults.mail_user", "")
	viper.SetDefault("defaults.mail_type", "ALL")
	viper.SetDefault("defaults.cpus", 0)
}

// EnvVarName returns the environment variable that overrides key
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// IsKnownKey reports whether key is a standard config key
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "."+AppName, ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, AppName, ConfigFilename+"."+ConfigType), nil
}

// SaveConfig saves current Viper config to the user config file
func SaveConfig() error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveConfigTo(configPath)
}

// SaveConfigTo saves current Viper config to path, creating parent directories
func SaveConfigTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadFromViper loads config from Viper into Global struct
func LoadFromViper() {
	if bin := viper.GetString("sinfo_bin"); bin != "" {
		Global.SinfoBin = bin
	}

	if dir := viper.GetString("output_dir"); dir != "" {
		Global.OutputDir = dir
	}

	Global.Color = viper.GetBool("color")

	if mailUser := viper.GetString("defaults.mail_user"); mailUser != "" {
		Global.Defaults.MailUser = mailUser
	}

	if mailType := viper.GetString("defaults.mail_type"); mailType != "" {
		Global.Defaults.MailType = strings.ToUpper(mailType)
	}

	if cpus := viper.GetInt("defaults.cpus"); cpus > 0 {
		Global.Defaults.CPUs = cpus
	}
}
