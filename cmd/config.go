package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theWizardsBaker/sbatch-gen/internal/config"
	"github.com/theWizardsBaker/sbatch-gen/internal/scheduler"
	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
)

var initForce bool

// configKeysCompletion returns config keys for shell completion
func configKeysCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.Keys, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) == 1 {
		return configValueCompletion(args[0]), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configValueCompletion returns suggested values for a config key
func configValueCompletion(key string) []string {
	switch key {
	case "color":
		return []string{"true", "false"}
	case "defaults.mail_type":
		return scheduler.NotifyTypes
	case "defaults.cpus":
		return []string{"1", "2", "4", "8", "16"}
	default:
		return nil
	}
}

// getConfigEnvVars returns the sorted environment overrides for all known keys
func getConfigEnvVars() []string {
	vars := make([]string, 0, len(config.Keys))
	for _, key := range config.Keys {
		vars = append(vars, config.EnvVarName(key))
	}
	sort.Strings(vars)
	return vars
}

// validateConfigValue checks a value before it is saved
func validateConfigValue(key, value string) error {
	switch key {
	case "color":
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
	case "defaults.cpus":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative whole number", key)
		}
	case "defaults.mail_type":
		if !scheduler.NotifyTypeValid(value) {
			return scheduler.NewValidationError(key, value, "must be one of BEGIN, END, FAIL, ALL")
		}
	case "defaults.mail_user":
		if value != "" && !scheduler.EmailValid(value) {
			return scheduler.NewValidationError(key, value, "not a valid email address")
		}
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sbatch-gen configuration",
	Long: `Manage sbatch-gen configuration settings.

Configuration priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (SBATCH_GEN_*)
  3. User config file (~/.config/sbatch-gen/config.yaml)
  4. System config file (/etc/sbatch-gen/config.yaml)
  5. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, utils.StyleTitle("Config File Search Paths:"))
		used := viper.ConfigFileUsed()
		for i, dir := range config.SearchPaths() {
			fmt.Fprintf(out, "  %d. %s\n", i+1, dir)
		}
		if used != "" {
			fmt.Fprintf(out, "  In use: %s\n", utils.StylePath(used))
		} else {
			fmt.Fprintf(out, "  %s (use 'sbatch-gen config init' to create)\n", utils.StyleWarning("No config file found"))
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, utils.StyleTitle("Settings:"))
		for _, key := range config.Keys {
			fmt.Fprintf(out, "  %-20s %v\n", key, viper.Get(key))
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, utils.StyleTitle("Environment Overrides:"))
		hasEnvOverrides := false
		for _, envVar := range getConfigEnvVars() {
			if val := os.Getenv(envVar); val != "" {
				fmt.Fprintf(out, "  %s=%s\n", envVar, val)
				hasEnvOverrides = true
			}
		}
		if !hasEnvOverrides {
			fmt.Fprintf(out, "  %s\n", utils.StyleInfo("none"))
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Example: `  sbatch-gen config get sinfo_bin
  sbatch-gen config get defaults.mail_user`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: configKeysCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		value := viper.Get(args[0])
		if value == nil {
			return fmt.Errorf("unknown config key: %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Example: `  sbatch-gen config set sinfo_bin /opt/slurm/bin/sinfo
  sbatch-gen config set output_dir ~/jobs
  sbatch-gen config set defaults.mail_user me@example.org
  sbatch-gen config set defaults.mail_type END`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: configKeysCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if !config.IsKnownKey(key) {
			utils.PrintWarning("'%s' is not a standard config key", key)
		}
		if err := validateConfigValue(key, value); err != nil {
			return err
		}

		viper.Set(key, value)
		if err := config.SaveConfig(); err != nil {
			return err
		}

		configPath, _ := config.GetUserConfigPath()
		utils.PrintSuccess("Set %s = %s", utils.StyleInfo(key), utils.StyleInfo(value))
		utils.PrintNote("Config saved to: %s", utils.StylePath(configPath))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetUserConfigPath()
		if err != nil {
			return err
		}
		if utils.FileExists(configPath) && !initForce {
			utils.PrintWarning("Config file already exists: %s", utils.StylePath(configPath))
			utils.PrintHint("Use --force to overwrite it")
			return nil
		}
		if err := config.SaveConfigTo(configPath); err != nil {
			return err
		}
		utils.PrintSuccess("Created config file: %s", utils.StylePath(configPath))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the user config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetUserConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configInitCmd, configPathCmd)
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}
