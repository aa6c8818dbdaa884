package scheduler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
)

const (
	shebang         = "#!/bin/bash"
	directivePrefix = "#SBATCH"
	sbatchDocsURL   = "https://slurm.schedmd.com/sbatch.html"
)

// BuildScript assembles the sbatch script for node and req.
//
// Directives are written in a fixed order: partition, time, cpus-per-task,
// mem, job-name, output, then mail-type and mail-user when req.Notify is set.
// Inputs are trusted to be validated already. The output depends only on
// the arguments.
func BuildScript(node Node, req ResourceRequest) string {
	var b strings.Builder

	fmt.Fprintln(&b, shebang)
	writeDirective(&b, "partition", node.Name)
	writeDirective(&b, "time", req.TimeLimit)
	writeDirective(&b, "cpus-per-task", strconv.Itoa(req.CPUs))
	writeDirective(&b, "mem", req.Memory)
	writeDirective(&b, "job-name", req.JobName)
	writeDirective(&b, "output", req.OutputFile)
	if req.Notify {
		writeDirective(&b, "mail-type", req.NotifyType)
		writeDirective(&b, "mail-user", req.Email)
	}

	fmt.Fprintln(&b, "")
	fmt.Fprintln(&b, "## place your code to run below:")
	fmt.Fprintf(&b, "## more sbatch options: %s\n", sbatchDocsURL)
	fmt.Fprintln(&b, "## ----------------------------")
	fmt.Fprintln(&b, req.Command)

	return b.String()
}

func writeDirective(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s --%s=%s\n", directivePrefix, key, value)
}

// CheckOutputDir reports whether scripts can be written to dir. A missing
// dir is fine as long as its nearest existing ancestor is a writable directory.
func CheckOutputDir(dir string) error {
	if dir == "" {
		dir = "."
	}
	for p := dir; ; p = filepath.Dir(p) {
		switch {
		case utils.FileExists(p):
			return fmt.Errorf("%w: %s is a file", ErrBadOutputDir, p)
		case utils.DirExists(p):
			if !utils.IsWritableDir(p) {
				return fmt.Errorf("%w: %s is not writable", ErrBadOutputDir, p)
			}
			return nil
		}
		if parent := filepath.Dir(p); parent == p {
			return fmt.Errorf("%w: %s", ErrBadOutputDir, dir)
		}
	}
}

// WriteScript saves script as <outputDir>/<jobName>.sh and makes it executable.
// Returns the absolute path of the written file.
func WriteScript(outputDir, jobName, script string) (string, error) {
	if outputDir == "" {
		outputDir = "."
	}
	if err := CheckOutputDir(outputDir); err != nil {
		return "", NewScriptCreationError(jobName, outputDir, err)
	}
	if err := os.MkdirAll(outputDir, utils.PermDir); err != nil {
		return "", NewScriptCreationError(jobName, outputDir, err)
	}

	scriptPath := filepath.Join(outputDir, ScriptFileName(jobName))
	if err := os.WriteFile(scriptPath, []byte(script), utils.PermExec); err != nil {
		return "", NewScriptCreationError(jobName, scriptPath, err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(scriptPath, utils.PermExec); err != nil {
		return "", NewScriptCreationError(jobName, scriptPath, err)
	}

	scriptPath = utils.AbsPath(scriptPath)
	utils.PrintDebug("Wrote %d bytes to %s", len(script), utils.StylePath(scriptPath))
	return scriptPath, nil
}

// safeJobName converts a job name to a filesystem-safe string by replacing "/" with "--".
func safeJobName(name string) string {
	return strings.ReplaceAll(name, "/", "--")
}
