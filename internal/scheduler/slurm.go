package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
)

// MinSlurmVersion is the first Slurm release whose sinfo supports -O/--Format
const MinSlurmVersion = "v14.3.0"

// sinfoArgs queries one row per partition in the column order ParseNodeTable expects
var sinfoArgs = []string{
	"-S", "partitionname",
	"-O", "partitionname,available,cpus,cpusstate,defaulttime,freemem,memory",
}

// Slurm queries node status through sinfo
type Slurm struct {
	sinfoBin string
}

// NewSlurmWithBinary creates a Slurm client using an explicit sinfo path.
// An empty path or bare name is resolved through PATH.
func NewSlurmWithBinary(sinfoBin string) (*Slurm, error) {
	binPath := sinfoBin
	if binPath == "" {
		binPath = "sinfo"
	}

	if !strings.Contains(binPath, string(filepath.Separator)) {
		resolved, err := exec.LookPath(binPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSinfoNotFound, err)
		}
		return &Slurm{sinfoBin: resolved}, nil
	}

	if absPath, err := filepath.Abs(binPath); err == nil {
		binPath = absPath
	}
	info, err := os.Stat(binPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinfoNotFound, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSinfoNotFound, binPath)
	}
	return &Slurm{sinfoBin: binPath}, nil
}

// Binary returns the resolved sinfo path
func (s *Slurm) Binary() string {
	return s.sinfoBin
}

// QueryNodeTable runs the status query and returns its raw output
func (s *Slurm) QueryNodeTable(ctx context.Context) (string, error) {
	utils.PrintDebug("Running %s", utils.StyleCommand(s.sinfoBin+" "+strings.Join(sinfoArgs, " ")))

	cmd := exec.CommandContext(ctx, s.sinfoBin, sinfoArgs...)
	output, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return "", NewClusterError("query nodes", stderr, err)
	}
	return string(output), nil
}

// QueryNodes runs the status query and parses it.
// Returns ErrNoNodes if the table has no rows.
func (s *Slurm) QueryNodes(ctx context.Context) ([]Node, error) {
	raw, err := s.QueryNodeTable(ctx)
	if err != nil {
		return nil, err
	}
	return nodesOrError(ParseNodeTable(raw))
}

// ReadNodeTable parses a saved status table from a file
func ReadNodeTable(path string) ([]Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read node table: %w", err)
	}
	return nodesOrError(ParseNodeTable(string(data)))
}

func nodesOrError(nodes []Node) ([]Node, error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}
	return nodes, nil
}

// GetInfo returns information about the Slurm installation
func (s *Slurm) GetInfo(ctx context.Context) *SchedulerInfo {
	info := &SchedulerInfo{
		Type:   "SLURM",
		Binary: s.sinfoBin,
		InJob:  IsInsideJob(),
	}

	version, err := s.getSlurmVersion(ctx)
	if err != nil {
		utils.PrintDebug("Could not read Slurm version: %v", err)
		return info
	}
	info.Version = version
	supported, err := VersionSupported(version)
	if err != nil {
		utils.PrintDebug("Could not compare Slurm version %q: %v", version, err)
		return info
	}
	info.Supported = supported
	info.SupportKnown = true
	return info
}

// getSlurmVersion runs "sinfo --version", which prints e.g. "slurm 23.02.6"
func (s *Slurm) getSlurmVersion(ctx context.Context) (string, error) {
	output, err := exec.CommandContext(ctx, s.sinfoBin, "--version").Output()
	if err != nil {
		return "", NewClusterError("query version", "", err)
	}
	return ParseVersionOutput(string(output))
}

// ParseVersionOutput extracts the version number from sinfo --version output
func ParseVersionOutput(output string) (string, error) {
	parts := strings.Fields(strings.TrimSpace(output))
	if len(parts) == 0 {
		return "", ErrVersionParseFailed
	}
	return parts[len(parts)-1], nil
}

// CanonicalVersion converts a Slurm version ("23.02.6", "21.08.8-2") into
// semver form ("v23.2.6"). Slurm zero-pads the minor number, which semver rejects.
func CanonicalVersion(version string) (string, error) {
	core, _, _ := strings.Cut(strings.TrimPrefix(version, "v"), "-")
	fields := strings.Split(core, ".")
	if len(fields) == 0 || len(fields) > 3 {
		return "", fmt.Errorf("%w: %s", ErrVersionParseFailed, version)
	}

	nums := make([]string, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return "", fmt.Errorf("%w: %s", ErrVersionParseFailed, version)
		}
		nums[i] = strconv.Itoa(n)
	}

	v := semver.Canonical("v" + strings.Join(nums, "."))
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrVersionParseFailed, version)
	}
	return v, nil
}

// VersionSupported reports whether version is at least MinSlurmVersion
func VersionSupported(version string) (bool, error) {
	v, err := CanonicalVersion(version)
	if err != nil {
		return false, err
	}
	return semver.Compare(v, MinSlurmVersion) >= 0, nil
}

// IsInsideJob checks if we're currently running inside a Slurm job
func IsInsideJob() bool {
	_, ok := os.LookupEnv("SLURM_JOB_ID")
	return ok
}
