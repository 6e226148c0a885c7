package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-pandoc-cmd/internal/storage"
)

func TestRunDoctor_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setup      func(te *testEnv)
		wantCode   int
		wantStatus string
	}{
		{
			name: "ready",
			setup: func(te *testEnv) {
				te.runner.handle = succeed("v1.0\n")
				te.vars["ROD_BROWSER_BIN"] = "/usr/bin/chromium"
			},
			wantCode:   ExitSuccess,
			wantStatus: "ready",
		},
		{
			name:       "missing tools are warnings",
			setup:      func(*testEnv) {},
			wantCode:   ExitSuccess,
			wantStatus: "warnings",
		},
		{
			name: "broken preset store is an error",
			setup: func(te *testEnv) {
				te.runner.handle = succeed("v1.0\n")
				te.OpenKV = func(string, string) (storage.KV, error) {
					return nil, errors.New("disk on fire")
				}
			},
			wantCode:   ExitGeneral,
			wantStatus: "errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			tt.setup(te)
			if code := te.run("doctor", "--json"); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, te.stderr)
			}

			var got doctorResult
			if err := json.Unmarshal(te.stdout.Bytes(), &got); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, te.stdout)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (warnings %v, errors %v)", got.Status, tt.wantStatus, got.Warnings, got.Errors)
			}
			if len(got.Tools) != 7 {
				t.Errorf("got %d tools, want 7", len(got.Tools))
			}
			if got.Env.OS != "linux" {
				t.Errorf("os = %q, want linux", got.Env.OS)
			}
		})
	}
}

func TestRunDoctor_Text(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.vars["CI"] = "true"
	if code := te.run("doctor"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr)
	}
	out := te.stdout.String()
	for _, w := range []string{"Toolchain", "pandoc: not found", "CI: detected", "Unavailable settings", "Status: Ready with warnings"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}
