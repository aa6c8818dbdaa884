// Package scheduler parses Slurm node status and assembles sbatch scripts
package scheduler

import (
	"fmt"
	"time"
)

// AvailableUp is the sinfo availability token for a usable partition
const AvailableUp = "up"

// CPUState holds the allocated/idle CPU counts reported by sinfo
type CPUState struct {
	Allocated int
	Idle      int
}

// FreePercent returns idle CPUs as a percentage of max(allocated, idle).
// Returns 0 when both counts are zero.
func (c CPUState) FreePercent() int {
	denom := c.Allocated
	if c.Idle > denom {
		denom = c.Idle
	}
	if denom <= 0 {
		return 0
	}
	return c.Idle * 100 / denom
}

// Node is one row of the cluster status table
type Node struct {
	Name          string   // Partition/node name, used as --partition
	Available     string   // "up" or any degraded state
	TotalCPUs     int      // Total CPUs ("+" suffix stripped)
	CPUState      CPUState // Allocated/idle CPUs
	TimeLimit     string   // Raw [days-]HH:MM:SS limit
	FreeMemoryMB  int64    // Free memory in MB
	TotalMemoryMB int64    // Total memory in MB ("+" suffix stripped)
}

// IsUp reports whether the node is usable
func (n Node) IsUp() bool {
	return n.Available == AvailableUp
}

// ResourceRequest holds the operator's validated answers for one script.
// It is built by value and never mutated once passed to BuildScript.
type ResourceRequest struct {
	JobName    string // Job name, also the script file stem
	CPUs       int    // --cpus-per-task
	Memory     string // --mem, normalized (e.g. "4G", "500M")
	TimeLimit  string // --time
	Notify     bool   // Emit mail directives
	Email      string // --mail-user
	NotifyType string // --mail-type (BEGIN, END, FAIL, ALL)
	Command    string // Script body, may be empty
	OutputFile string // --output, "%j" left literal
}

// DefaultJobName returns the date-derived job name used when none is given
func DefaultJobName(t time.Time) string {
	return "sbatch_" + t.Format("2006_01_02")
}

// DefaultOutputFile returns the default --output value for a job name
func DefaultOutputFile(jobName string) string {
	return fmt.Sprintf("%s_%%j.out", jobName)
}

// ScriptFileName returns the file name a script for jobName is saved under
func ScriptFileName(jobName string) string {
	return safeJobName(jobName) + ".sh"
}

// SchedulerInfo holds information about the detected Slurm installation
type SchedulerInfo struct {
	Type         string // Always "SLURM"
	Binary       string // Path to sinfo
	Version      string // Slurm version (if available)
	InJob        bool   // Whether we're currently inside a Slurm job
	Supported    bool   // Whether the version supports the sinfo -O query
	SupportKnown bool   // False when Version could not be compared
}
