// Package process runs command lines through the platform shell with an
// extended PATH, and tears down whole process trees on cancellation.
package process

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// waitDelay bounds how long Wait blocks on output pipes after a kill.
const waitDelay = 2 * time.Second

// Shell builds a command that runs line through sh -c (cmd /C on Windows).
// The child gets ExtendedPath in its environment and its own process group;
// canceling ctx kills the whole group.
func Shell(ctx context.Context, line string) *exec.Cmd {
	name, args := shellArgs(line)
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- command line is built by the caller on purpose
	cmd.Env = Environ()
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	cmd.WaitDelay = waitDelay
	return cmd
}

// Environ returns the current environment with PATH replaced by ExtendedPath.
func Environ() []string {
	env := os.Environ()
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			continue
		}
		out = append(out, kv)
	}
	home, _ := os.UserHomeDir()
	return append(out, "PATH="+ExtendedPath(runtime.GOOS, home, os.Getenv("PATH"), os.ReadDir))
}

// ExtendedPath prepends the directories where package managers usually
// install pandoc, TeX engines and npm filters. GUI launchers and service
// managers often start us with a minimal PATH that misses all of them.
// readDir is used to discover nvm-managed node versions on macOS.
func ExtendedPath(goos, home, current string, readDir func(string) ([]os.DirEntry, error)) string {
	var extra []string

	switch goos {
	case "darwin":
		extra = []string{
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/opt/local/bin",
			"/Library/TeX/texbin",
			"/usr/texbin",
			filepath.Join(home, "bin"),
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".cargo", "bin"),
			filepath.Join(home, ".npm-global", "bin"),
			filepath.Join(home, "node_modules", ".bin"),
			"/usr/local/lib/node_modules/.bin",
		}
		nvmDir := filepath.Join(home, ".nvm", "versions", "node")
		if entries, err := readDir(nvmDir); err == nil {
			for _, e := range entries {
				if e.IsDir() {
					extra = append(extra, filepath.Join(nvmDir, e.Name(), "bin"))
				}
			}
		}
	case "linux":
		extra = []string{
			"/usr/local/bin",
			filepath.Join(home, "bin"),
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".cargo", "bin"),
			"/usr/local/texlive/2025/bin/x86_64-linux",
			"/usr/local/texlive/2024/bin/x86_64-linux",
			"/usr/local/texlive/2023/bin/x86_64-linux",
			filepath.Join(home, ".npm-global", "bin"),
			"/usr/local/lib/node_modules/.bin",
		}
	default:
		return current
	}

	if current == "" {
		return strings.Join(extra, string(os.PathListSeparator))
	}
	return strings.Join(extra, string(os.PathListSeparator)) + string(os.PathListSeparator) + current
}
