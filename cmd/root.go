package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theWizardsBaker/sbatch-gen/internal/config"
	"github.com/theWizardsBaker/sbatch-gen/internal/scheduler"
	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
	"github.com/theWizardsBaker/sbatch-gen/internal/wizard"
)

var (
	debugMode bool
	quietMode bool
	noColor   bool
	inputFile string
)

var rootCmd = &cobra.Command{
	Use:   "sbatch-gen",
	Short: "Interactively generate a SLURM batch script for the cluster",
	Long: `Generate a SLURM sbatch script by picking a node and resources.

sbatch-gen queries node status with sinfo, asks for CPUs, memory, time limit,
optional email notifications and a command, validates every answer against
the selected node, and writes <job-name>.sh ready for sbatch.`,
	Example: `  sbatch-gen                        # Start the interactive generator
  sbatch-gen -o ~/jobs              # Write the script into ~/jobs
  sbatch-gen --input sinfo.txt      # Use a saved sinfo table instead of querying
  sbatch-gen --print                # Print the script instead of writing it`,
	Version:       config.VERSION,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: Load defaults
		config.LoadDefaults()

		// Step 2: Initialize Viper (read config file, env vars)
		if err := config.InitViper(); err != nil {
			utils.PrintWarning("Error reading config file: %v", err)
		}

		// Step 3: Load values from Viper into Global config
		config.LoadFromViper()

		// Step 4: Apply command-line flags (highest priority)
		if noColor {
			config.Global.Color = false
		}
		utils.SetColor(config.Global.Color)

		if quietMode {
			utils.QuietMode = true
			config.Global.Quiet = true
		}

		if debugMode {
			utils.DebugMode = true
			config.Global.Debug = true
			utils.PrintDebug("Debug mode enabled")
			utils.PrintDebug("sbatch-gen Version: %s", utils.StyleInfo(config.VERSION))
			if used := viper.ConfigFileUsed(); used != "" {
				utils.PrintDebug("Config file: %s", utils.StylePath(used))
			}
			utils.PrintDebug("sinfo Binary: %s", config.Global.SinfoBin)
			utils.PrintDebug("Output Directory: %s", config.Global.OutputDir)
		}
	},
	RunE: runGenerate,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, scheduler.ErrNoNodes):
			utils.PrintError("No nodes available: the cluster status table is empty")
			utils.PrintHint("Check %s or pass a saved table with --input", utils.StyleCommand("sinfo"))
		case errors.Is(err, scheduler.ErrSinfoNotFound):
			utils.PrintError("%v", err)
			utils.PrintHint("Set the sinfo path with --sinfo-bin or %s", utils.StyleCommand("sbatch-gen config set sinfo_bin <path>"))
		case errors.Is(err, scheduler.ErrBadOutputDir):
			utils.PrintError("%v", err)
			utils.PrintHint("Pick another directory with --output-dir or %s", utils.StyleCommand("sbatch-gen config set output_dir <path>"))
		case scheduler.IsClusterError(err):
			utils.PrintError("%v", err)
			utils.PrintHint("Check that SLURM is reachable with %s, or pass a saved table with --input", utils.StyleCommand("sinfo"))
		case errors.Is(err, wizard.ErrInputClosed):
			fmt.Fprintln(os.Stderr, "\n Quitting...")
		default:
			utils.PrintError("%v", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Subcommands are attached to rootCmd in their respective init() functions
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress banner and informational messages")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "Read the node table from a file instead of running sinfo")
	rootCmd.PersistentFlags().String("sinfo-bin", "", "Path to the sinfo binary")
	_ = viper.BindPFlag("sinfo_bin", rootCmd.PersistentFlags().Lookup("sinfo-bin"))
}
