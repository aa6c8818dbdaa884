package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeFakeSinfo creates an executable shell script standing in for sinfo
func writeFakeSinfo(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake sinfo requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "sinfo")
	script := "#!/bin/sh\n" + body
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake sinfo: %v", err)
	}
	return path
}

const fakeSinfoBody = `if [ "$1" = "--version" ]; then
  echo "slurm 23.02.6"
  exit 0
fi
cat <<'EOF'
PARTITION           AVAIL               CPUS                CPUS(A/I/O/T)       DEFAULTTIME         FREE_MEM            MEMORY
gpu                 up                  32+                 4/28/0/32           2-00:00:00          120000              128000+
node01              up                  16                  2/14/0/16           1-00:00:00          2000                8000
EOF
`

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSlurmQueryNodes(t *testing.T) {
	bin := writeFakeSinfo(t, fakeSinfoBody)

	s, err := NewSlurmWithBinary(bin)
	if err != nil {
		t.Fatalf("NewSlurmWithBinary failed: %v", err)
	}
	if s.Binary() != bin {
		t.Errorf("Binary() = %q, want %q", s.Binary(), bin)
	}

	nodes, err := s.QueryNodes(testContext(t))
	if err != nil {
		t.Fatalf("QueryNodes failed: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}

	gpu := nodes[0]
	if gpu.Name != "gpu" || gpu.TotalCPUs != 32 || gpu.TotalMemoryMB != 128000 {
		t.Errorf("gpu node = %+v", gpu)
	}
	if gpu.CPUState != (CPUState{Allocated: 4, Idle: 28}) {
		t.Errorf("gpu cpu state = %+v", gpu.CPUState)
	}
	if nodes[1].Name != "node01" || nodes[1].TimeLimit != "1-00:00:00" {
		t.Errorf("node01 = %+v", nodes[1])
	}
}

func TestSlurmQueryNodesEmptyTable(t *testing.T) {
	bin := writeFakeSinfo(t, "echo 'PARTITION AVAIL CPUS CPUS(A/I/O/T) DEFAULTTIME FREE_MEM MEMORY'\n")

	s, err := NewSlurmWithBinary(bin)
	if err != nil {
		t.Fatalf("NewSlurmWithBinary failed: %v", err)
	}
	if _, err := s.QueryNodes(testContext(t)); !errors.Is(err, ErrNoNodes) {
		t.Errorf("QueryNodes error = %v, want ErrNoNodes", err)
	}
}

func TestSlurmQueryNodesCommandFailure(t *testing.T) {
	bin := writeFakeSinfo(t, "echo 'slurm_load_partitions: Unable to contact slurm controller' >&2\nexit 1\n")

	s, err := NewSlurmWithBinary(bin)
	if err != nil {
		t.Fatalf("NewSlurmWithBinary failed: %v", err)
	}
	_, err = s.QueryNodes(testContext(t))
	if !IsClusterError(err) {
		t.Fatalf("QueryNodes error = %v, want ClusterError", err)
	}
	var ce *ClusterError
	errors.As(err, &ce)
	if !strings.Contains(ce.Output, "Unable to contact") {
		t.Errorf("ClusterError.Output = %q, want captured stderr", ce.Output)
	}
}

func TestSlurmGetInfo(t *testing.T) {
	bin := writeFakeSinfo(t, fakeSinfoBody)
	t.Setenv("SLURM_JOB_ID", "12345")

	s, err := NewSlurmWithBinary(bin)
	if err != nil {
		t.Fatalf("NewSlurmWithBinary failed: %v", err)
	}
	info := s.GetInfo(testContext(t))
	if info.Type != "SLURM" || info.Binary != bin {
		t.Errorf("info = %+v", info)
	}
	if info.Version != "23.02.6" {
		t.Errorf("Version = %q, want 23.02.6", info.Version)
	}
	if !info.Supported {
		t.Errorf("23.02.6 should be supported")
	}
	if !info.InJob {
		t.Errorf("InJob = false with SLURM_JOB_ID set")
	}
	if !info.SupportKnown {
		t.Errorf("SupportKnown = false for a parseable version")
	}
}

func TestSlurmGetInfoUnparseableVersion(t *testing.T) {
	bin := writeFakeSinfo(t, "echo \"slurm weird\"\n")

	s, err := NewSlurmWithBinary(bin)
	if err != nil {
		t.Fatalf("NewSlurmWithBinary failed: %v", err)
	}
	info := s.GetInfo(testContext(t))
	if info.Version != "weird" {
		t.Errorf("Version = %q, want weird", info.Version)
	}
	if info.SupportKnown || info.Supported {
		t.Errorf("support status should be unknown, got %+v", info)
	}
}

func TestNewSlurmWithBinaryNotFound(t *testing.T) {
	if _, err := NewSlurmWithBinary("sinfo-does-not-exist-anywhere"); !errors.Is(err, ErrSinfoNotFound) {
		t.Errorf("bare name error = %v, want ErrSinfoNotFound", err)
	}

	missing := filepath.Join(t.TempDir(), "missing", "sinfo")
	if _, err := NewSlurmWithBinary(missing); !errors.Is(err, ErrSinfoNotFound) {
		t.Errorf("missing path error = %v, want ErrSinfoNotFound", err)
	}

	if _, err := NewSlurmWithBinary(t.TempDir()); !errors.Is(err, ErrSinfoNotFound) {
		t.Errorf("directory error = %v, want ErrSinfoNotFound", err)
	}
}

func TestReadNodeTable(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "nodes.txt")
	table := testHeader + "\nnode01 up 16 2/14 1-00:00:00 2000 8000\n"
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	nodes, err := ReadNodeTable(path)
	if err != nil {
		t.Fatalf("ReadNodeTable failed: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "node01" {
		t.Errorf("nodes = %+v", nodes)
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte(testHeader+"\n"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := ReadNodeTable(empty); !errors.Is(err, ErrNoNodes) {
		t.Errorf("empty table error = %v, want ErrNoNodes", err)
	}

	if _, err := ReadNodeTable(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestCanonicalVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"23.02.6", "v23.2.6", false},
		{"21.08.8-2", "v21.8.8", false},
		{"v14.03", "v14.3.0", false},
		{"14.03.0", "v14.3.0", false},
		{"24", "v24.0.0", false},
		{"", "", true},
		{"abc", "", true},
		{"1.2.3.4", "", true},
	}

	for _, tt := range tests {
		got, err := CanonicalVersion(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrVersionParseFailed) {
				t.Errorf("CanonicalVersion(%q) error = %v, want ErrVersionParseFailed", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("CanonicalVersion(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestVersionSupported(t *testing.T) {
	tests := map[string]bool{
		"23.02.6":  true,
		"14.03.0":  true,
		"14.11.11": true,
		"2.6.5":    false,
		"14.2.9":   false,
	}
	for version, want := range tests {
		got, err := VersionSupported(version)
		if err != nil {
			t.Errorf("VersionSupported(%q) unexpected error: %v", version, err)
			continue
		}
		if got != want {
			t.Errorf("VersionSupported(%q) = %v, want %v", version, got, want)
		}
	}

	if _, err := VersionSupported("nonsense"); err == nil {
		t.Errorf("VersionSupported(nonsense) expected error")
	}
}

func TestParseVersionOutput(t *testing.T) {
	got, err := ParseVersionOutput("slurm 23.02.6\n")
	if err != nil || got != "23.02.6" {
		t.Errorf("ParseVersionOutput = %q, %v; want 23.02.6", got, err)
	}
	if _, err := ParseVersionOutput("   "); !errors.Is(err, ErrVersionParseFailed) {
		t.Errorf("blank output error = %v, want ErrVersionParseFailed", err)
	}
}

func TestIsInsideJob(t *testing.T) {
	t.Setenv("SLURM_JOB_ID", "1")
	if !IsInsideJob() {
		t.Errorf("IsInsideJob() = false with SLURM_JOB_ID set")
	}
	os.Unsetenv("SLURM_JOB_ID")
	if IsInsideJob() {
		t.Errorf("IsInsideJob() = true without SLURM_JOB_ID")
	}
}
