package main

import (
	"strings"
	"testing"
)

func TestRunTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     []string
	}{
		{name: "list", args: []string{"theme"}, wantCode: ExitSuccess, want: []string{"breezedark", "pygments", "zenburn", "none"}},
		{name: "preview", args: []string{"theme", "tango"}, wantCode: ExitSuccess, want: []string{"preview style: tango", "background", "#"}},
		{name: "html sample", args: []string{"theme", "--html", "espresso"}, wantCode: ExitSuccess, want: []string{"<pre", "fib"}},
		{name: "unknown", args: []string{"theme", "solarized"}, wantCode: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			if code := te.run(tt.args...); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, te.stderr)
			}
			out := te.stdout.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}
