package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/theWizardsBaker/sbatch-gen/internal/config"
	"github.com/theWizardsBaker/sbatch-gen/internal/scheduler"
	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
)

var schedulerCmd = &cobra.Command{
	Use:     "scheduler",
	Aliases: []string{"sched"},
	Short:   "Display SLURM information",
	Long: `Display information about the detected SLURM installation.

Shows the sinfo binary, the SLURM version and whether that version supports
the sinfo query used to list nodes.`,
	Example: `  sbatch-gen scheduler           # Show scheduler information
  sbatch-gen sched               # Short alias`,
	Args: cobra.NoArgs,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	slurm, err := scheduler.NewSlurmWithBinary(config.Global.SinfoBin)
	if err != nil {
		utils.PrintMessage("Scheduler Status: %s", utils.StyleError("Not Found"))
		utils.PrintMessage("No sinfo binary found (looked for %s).", utils.StyleCommand(config.Global.SinfoBin))
		return nil
	}

	info := slurm.GetInfo(cmd.Context())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Scheduler Information:")
	fmt.Fprintf(out, "  Type:      %s\n", utils.StyleInfo(info.Type))
	fmt.Fprintf(out, "  Binary:    %s\n", utils.StylePath(info.Binary))

	if info.Version == "" {
		fmt.Fprintf(out, "  Version:   %s\n", utils.StyleWarning("unknown"))
	} else {
		fmt.Fprintf(out, "  Version:   %s\n", utils.StyleNumber(info.Version))
		switch {
		case !info.SupportKnown:
			fmt.Fprintf(out, "  Status:    %s (could not compare against SLURM %s)\n",
				utils.StyleWarning("unknown"), scheduler.MinSlurmVersion)
		case info.Supported:
			fmt.Fprintf(out, "  Status:    %s\n", utils.StyleSuccess("Supported"))
		default:
			fmt.Fprintf(out, "  Status:    %s (sinfo -O needs SLURM %s or newer)\n",
				utils.StyleError("Unsupported"), scheduler.MinSlurmVersion)
		}
	}

	if info.InJob {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "You are currently inside a SLURM job (detected via SLURM_JOB_ID).")
	}
	return nil
}
