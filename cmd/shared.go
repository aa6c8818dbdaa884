package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/theWizardsBaker/sbatch-gen/internal/config"
	"github.com/theWizardsBaker/sbatch-gen/internal/scheduler"
	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
)

// sinfoTimeout bounds the cluster status query
const sinfoTimeout = 30 * time.Second

// exitInterrupted is the exit code after Ctrl+C (128 + SIGINT)
const exitInterrupted = 130

// loadNodes reads the node table from --input or from sinfo
func loadNodes(cmd *cobra.Command) ([]scheduler.Node, error) {
	if inputFile != "" {
		utils.PrintDebug("Reading node table from %s", utils.StylePath(inputFile))
		return scheduler.ReadNodeTable(inputFile)
	}

	slurm, err := scheduler.NewSlurmWithBinary(config.Global.SinfoBin)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sinfoTimeout)
	defer cancel()
	return slurm.QueryNodes(ctx)
}

// handleInterrupt exits with status 130 on SIGINT/SIGTERM, which also
// aborts a prompt blocked on input. The returned func stops listening.
func handleInterrupt() func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n Quitting...")
			os.Exit(exitInterrupted)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
