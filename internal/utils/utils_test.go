package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureConsole(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	oldQuiet, oldDebug := QuietMode, DebugMode
	Stdout, Stderr = &stdout, &stderr
	SetColor(false)
	t.Cleanup(func() {
		Stdout, Stderr = oldOut, oldErr
		QuietMode, DebugMode = oldQuiet, oldDebug
	})
	return &stdout, &stderr
}

func TestFormatMemoryMB(t *testing.T) {
	cases := map[int64]string{
		0:    "0B",
		-5:   "0B",
		512:  "512MiB",
		1024: "1GiB",
		8192: "8GiB",
	}
	for mb, want := range cases {
		if got := FormatMemoryMB(mb); got != want {
			t.Errorf("FormatMemoryMB(%d) = %q; want %q", mb, got, want)
		}
	}
}

func TestBanner(t *testing.T) {
	b := Banner()
	if strings.HasPrefix(b, "\n") || strings.HasSuffix(b, "\n") {
		t.Errorf("banner should have no surrounding newlines")
	}
	if len(strings.Split(b, "\n")) < 3 {
		t.Errorf("banner unexpectedly short: %q", b)
	}
}

func TestPrinters(t *testing.T) {
	stdout, stderr := captureConsole(t)

	PrintMessage("hello %s", "world")
	PrintSuccess("done")
	PrintError("broken")
	PrintWarning("careful")

	if got := stdout.String(); got != "[SBG] hello world\n[SBG][PASS] done\n" {
		t.Errorf("stdout = %q", got)
	}
	if !strings.Contains(stderr.String(), "[SBG][ERR]  broken") || !strings.Contains(stderr.String(), "[SBG][WARN] careful") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestQuietAndDebugModes(t *testing.T) {
	stdout, stderr := captureConsole(t)

	QuietMode = true
	PrintMessage("hidden")
	PrintHint("hidden")
	PrintNote("hidden")
	PrintWarning("shown")
	if stdout.Len() != 0 {
		t.Errorf("quiet mode printed to stdout: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "shown") {
		t.Errorf("warnings must survive quiet mode")
	}

	stderr.Reset()
	DebugMode = false
	PrintDebug("invisible")
	if stderr.Len() != 0 {
		t.Errorf("debug output without DebugMode: %q", stderr.String())
	}
	DebugMode = true
	PrintDebug("visible")
	if !strings.Contains(stderr.String(), "[DBG]") {
		t.Errorf("debug output missing: %q", stderr.String())
	}
}

func TestStyleAvailableNoColor(t *testing.T) {
	captureConsole(t)
	if got := StyleAvailable("node01", true); got != "node01" {
		t.Errorf("StyleAvailable with color off = %q", got)
	}
	if got := StyleAvailable("node01", false); got != "node01" {
		t.Errorf("StyleAvailable with color off = %q", got)
	}
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.sh")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if !FileExists(file) || FileExists(dir) {
		t.Errorf("FileExists misreported a file or directory")
	}
	if !DirExists(dir) || DirExists(file) {
		t.Errorf("DirExists misreported a file or directory")
	}
	if !IsWritableDir(dir) {
		t.Errorf("temp dir should be writable")
	}
	if IsWritableDir(filepath.Join(dir, "missing")) {
		t.Errorf("missing dir reported writable")
	}
	if !filepath.IsAbs(AbsPath("relative/path")) {
		t.Errorf("AbsPath did not return an absolute path")
	}
}
