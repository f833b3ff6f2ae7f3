package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestEndToEndWorkflow drives a prebuilt routine binary through init,
// scheduling, reminders, goals, the journal and backups against an isolated
// HOME. Build it first with `go build -o bin/routine ./cmd/routine`.
func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	binDir := os.Getenv("ROUTINE_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join("..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	cliPath := filepath.Join(binDir, "routine")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Please build it first.", cliPath)
	}

	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var cleanEnv []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "ROUTINE_") {
			cleanEnv = append(cleanEnv, e)
		}
	}
	cleanEnv = append(cleanEnv, fmt.Sprintf("HOME=%s", tempDir))

	configPath := filepath.Join(tempDir, "routine", "config.yaml")
	dbPath := filepath.Join(tempDir, "routine", "routine.db")
	cli := func(args ...string) string {
		t.Helper()
		return runCmd(t, cliPath, cleanEnv, append([]string{"--config", configPath}, args...)...)
	}

	// 2. Initialize CLI
	out := cli("init", "--backend", "sqlite", "--path", dbPath)
	assertContains(t, out, "Initialized routine storage")
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	// 3. Schedule an activity starting this minute
	now := time.Now()
	if now.Second() > 50 {
		time.Sleep(time.Duration(61-now.Second()) * time.Second)
		now = time.Now()
	}
	if now.Hour() == 23 && now.Minute() >= 45 {
		t.Skip("too close to midnight to schedule a 15 minute activity")
	}
	day := strings.ToLower(now.Weekday().String())
	start := now.Format("15:04")
	end := now.Add(15 * time.Minute).Format("15:04")

	out = cli("activity", "add", "E2E Task", "-D", day, "-s", start, "-e", end)
	assertContains(t, out, "Added activity: E2E Task")

	// overlapping candidates are rejected
	if _, err := tryCmd(cliPath, cleanEnv, "--config", configPath,
		"activity", "add", "Clash", "-D", day, "-s", start, "-e", end); err == nil {
		t.Error("expected the overlapping activity to be rejected")
	}

	out = cli("activity", "list")
	assertContains(t, out, "E2E Task")
	assertContains(t, out, start+" - "+end)

	// 4. The main reminder is due this minute
	out = cli("notify", "--dry-run")
	assertContains(t, out, "[DryRun]")
	assertContains(t, out, "Time to do: E2E Task")

	// 5. Goals and journal
	cli("goal", "add", "Stay consistent", "-t", "10", "-c", "personal")
	out = cli("goal", "list")
	assertContains(t, out, "Stay consistent")

	cli("journal", "write", "End", "to", "end", "-s", "7")
	out = cli("journal", "show")
	assertContains(t, out, "End to end")

	// 6. Backups and diagnostics
	out = cli("backup", "create")
	assertContains(t, out, "Backup created")
	out = cli("backup", "list")
	assertContains(t, out, "Available backups (1 total")

	out = cli("doctor")
	assertContains(t, out, "All diagnostics passed!")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	out, err := tryCmd(path, env, args...)
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return out
}

func tryCmd(path string, env []string, args ...string) (string, error) {
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}
