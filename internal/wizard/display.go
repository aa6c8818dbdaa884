package wizard

import (
	"fmt"
	"io"

	"github.com/theWizardsBaker/sbatch-gen/internal/scheduler"
	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
)

const nodeSeparator = "-----------------------------"

// WriteNodeList prints nodes with their 1-based selection numbers.
// Degraded nodes are shown in red.
func WriteNodeList(w io.Writer, nodes []scheduler.Node) {
	for i, node := range nodes {
		fmt.Fprintln(w, utils.StyleSuccess(fmt.Sprintf("%d) %s", i+1, node.Name)))
		fmt.Fprintln(w, utils.StyleAvailable(FormatNode(node), node.IsUp()))
		fmt.Fprintln(w, nodeSeparator)
	}
}

// FormatNode renders one node's capacity summary
func FormatNode(node scheduler.Node) string {
	status := ""
	if !node.IsUp() {
		status = fmt.Sprintf(" (%s)", node.Available)
	}
	return fmt.Sprintf("[ CPU => %d (%d %% free), MEM => %s (%s free), TIME LIMIT => %s ]%s",
		node.TotalCPUs,
		node.CPUState.FreePercent(),
		utils.FormatMemoryMB(node.TotalMemoryMB),
		utils.FormatMemoryMB(node.FreeMemoryMB),
		node.TimeLimit,
		status,
	)
}

// WriteUsage prints how to submit and follow the generated script
func WriteUsage(w io.Writer, scriptPath string, req scheduler.ResourceRequest) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, utils.StyleTitle("Next steps:"))
	if req.Command == "" {
		fmt.Fprintf(w, "  Add your commands:  %s\n", utils.StyleCommand("$EDITOR "+scriptPath))
	}
	fmt.Fprintf(w, "  Submit the job:     %s\n", utils.StyleCommand("sbatch "+scriptPath))
	fmt.Fprintf(w, "  Check the queue:    %s\n", utils.StyleCommand("squeue -u $USER"))
	fmt.Fprintf(w, "  Job output goes to: %s\n", utils.StylePath(req.OutputFile))
}
