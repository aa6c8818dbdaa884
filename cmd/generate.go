package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theWizardsBaker/sbatch-gen/internal/config"
	"github.com/theWizardsBaker/sbatch-gen/internal/scheduler"
	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
	"github.com/theWizardsBaker/sbatch-gen/internal/wizard"
)

var printOnly bool

func init() {
	rootCmd.Flags().StringP("output-dir", "o", "", "Directory to write the generated script into")
	rootCmd.Flags().BoolVar(&printOnly, "print", false, "Print the generated script to stdout instead of writing a file")
	_ = viper.BindPFlag("output_dir", rootCmd.Flags().Lookup("output-dir"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	stop := handleInterrupt()
	defer stop()

	// fail before the questions rather than after them
	if !printOnly {
		if err := scheduler.CheckOutputDir(config.Global.OutputDir); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if !config.Global.Quiet {
		printIntro(out)
	}

	p := wizard.NewPrompter(cmd.InOrStdin(), out)
	session := wizard.NewSession(p, time.Now(), config.Global.Defaults)

	jobName, err := session.AskJobName()
	if err != nil {
		return err
	}

	nodes, err := loadNodes(cmd)
	if err != nil {
		return err
	}

	node, err := session.AskNode(nodes)
	if err != nil {
		return err
	}

	req, err := session.AskRequest(node, jobName)
	if err != nil {
		return err
	}

	script := scheduler.BuildScript(node, req)
	if printOnly {
		fmt.Fprint(out, script)
		return nil
	}

	target := filepath.Join(config.Global.OutputDir, scheduler.ScriptFileName(jobName))
	if utils.FileExists(target) {
		overwrite, err := p.AskYesNo(fmt.Sprintf("\n%s already exists. Overwrite it?", utils.StylePath(target)), false)
		if err != nil {
			return err
		}
		if !overwrite {
			utils.PrintMessage("Kept the existing %s; nothing was written", utils.StylePath(target))
			return nil
		}
	}

	scriptPath, err := scheduler.WriteScript(config.Global.OutputDir, jobName, script)
	if err != nil {
		return err
	}

	utils.PrintSuccess("Created %s", utils.StylePath(scriptPath))
	wizard.WriteUsage(out, scriptPath, req)
	return nil
}

func printIntro(w io.Writer) {
	fmt.Fprintln(w, utils.StyleBanner(utils.Banner()))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generate a %s to run jobs on the cluster.\n", utils.StyleWarning("SLURM batch script"))
	fmt.Fprintf(w, "Press %s at any time to quit.\n\n", utils.StyleError("Ctrl + C"))
}
