package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCaptured executes the root command with args and returns what it wrote to
// stdout.
func runCaptured(t *testing.T, args []string) (string, error) {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Read in background to prevent pipe buffer from blocking on Windows
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between tests
	drillScript = ""
	drillSeed = 1
	cfgFile = ""
	verbose = false

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// Restore stdout and wait for reader
	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}

// TestDrillE2E tests the drill command end-to-end
func TestDrillE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "default drill",
			args: []string{"drill"},
			wantContain: []string{
				"Drill: mode seq, side left, interval 2s",
				"Front left",
				"Back right",
				"Picks: 12",
			},
		},
		{
			name: "one sequential round",
			args: []string{"drill", "--script", "mode seq; rounds 1"},
			wantContain: []string{
				"Mid left",
				"Picks: 6  Rounds: 1  Elapsed: 10s",
			},
		},
		{
			name: "tactic mode prints hints",
			args: []string{"drill", "--script", "mode tactic; picks 6", "--seed", "3"},
			wantContain: []string{
				"Drill: mode tactic",
				"->",
				"Picks: 6",
			},
		},
		{
			name: "back zone only",
			args: []string{"drill", "--script", "zones back; side right; picks 4"},
			wantContain: []string{
				"side right",
				"Back left",
				"Picks: 4",
			},
		},
		{
			name:    "unknown mode",
			args:    []string{"drill", "--script", "mode sideways"},
			wantErr: true,
		},
		{
			name:    "speed out of range",
			args:    []string{"drill", "--script", "speed 99"},
			wantErr: true,
		},
		{
			name:    "no zones",
			args:    []string{"drill", "--script", "zones"},
			wantErr: true,
		},
		{
			name:    "missing script file",
			args:    []string{"drill", "does-not-exist.drill"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCaptured(t, tt.args)

			// Check error expectation
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			// Check output contains expected strings
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

// TestDrillFileE2E runs a script read from disk
func TestDrillFileE2E(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warmup.drill")
	script := "# warm-up\nmode seq\nzones front\nrounds 2\n"
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	output, err := runCaptured(t, []string{"drill", path})
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{"Front left", "Front right", "Picks: 4  Rounds: 2"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Back") {
		t.Errorf("Front-only drill picked a back position:\n%s", output)
	}
}

// TestConfigFileE2E checks that a config file is read and validated
func TestConfigFileE2E(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courtcoach.yaml")
	if err := os.WriteFile(path, []byte("logLevel: warn\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runCaptured(t, []string{"--config", path, "drill", "--script", "picks 1"}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if _, err := runCaptured(t, []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "drill"}); err == nil {
		t.Errorf("Expected error for missing config file")
	}
}
