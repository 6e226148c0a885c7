package pandoccmd

import (
	"context"
	"fmt"
	"runtime"
)

// InstallAction is what Installer does to a dependency.
type InstallAction string

// Install actions.
const (
	ActionInstall   InstallAction = "install"
	ActionReinstall InstallAction = "reinstall"
	ActionUninstall InstallAction = "uninstall"
)

// ParseInstallAction validates an action name.
func ParseInstallAction(s string) (InstallAction, error) {
	switch a := InstallAction(s); a {
	case ActionInstall, ActionReinstall, ActionUninstall:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q (must be install, reinstall or uninstall)", ErrUnknownInstallAction, s)
}

// Package managers.
const (
	managerBrew   = "brew"
	managerApt    = "apt-get"
	managerWinget = "winget"
	managerNpm    = "npm"
)

// installPackages maps dependency → package manager → package.
var installPackages = map[string]map[string]string{
	DepPandoc: {
		managerBrew:   "pandoc",
		managerApt:    "pandoc",
		managerWinget: "JohnMacFarlane.Pandoc",
	},
	DepTectonic: {
		managerBrew: "tectonic",
	},
	DepXeLaTeX: {
		managerBrew:   "--cask basictex",
		managerApt:    "texlive-xetex",
		managerWinget: "MiKTeX.MiKTeX",
	},
	DepLuaLaTeX: {
		managerBrew:   "--cask basictex",
		managerApt:    "texlive-luatex",
		managerWinget: "MiKTeX.MiKTeX",
	},
	DepPDFLaTeX: {
		managerBrew:   "--cask basictex",
		managerApt:    "texlive-latex-base",
		managerWinget: "MiKTeX.MiKTeX",
	},
	DepPandocCrossref: {
		managerBrew: "pandoc-crossref",
	},
	DepMermaidFilter: {
		managerNpm: "mermaid-filter",
	},
}

// Installer installs, reinstalls and uninstalls dependencies through the
// platform package manager (npm for mermaid-filter).
type Installer struct {
	runner StreamRunner
	goos   string
}

// NewInstaller returns an Installer for goos. A nil r uses the platform
// shell; an empty goos means the running platform.
func NewInstaller(r StreamRunner, goos string) *Installer {
	if r == nil {
		r = ShellRunner{}
	}
	if goos == "" {
		goos = runtime.GOOS
	}
	return &Installer{runner: r, goos: goos}
}

// CommandLine returns the shell command for action on dep.
func (i *Installer) CommandLine(action InstallAction, dep string) (string, error) {
	if _, err := ParseInstallAction(string(action)); err != nil {
		return "", err
	}
	pkgs, ok := installPackages[dep]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDependency, dep)
	}

	manager := i.manager()
	if pkg, ok := pkgs[managerNpm]; ok {
		return npmLine(action, pkg), nil
	}
	pkg, ok := pkgs[manager]
	if !ok || manager == "" {
		return "", fmt.Errorf("%w: %s on %s", ErrUnsupportedInstall, dep, i.goos)
	}

	switch manager {
	case managerBrew:
		return "brew " + string(action) + " " + pkg, nil
	case managerApt:
		switch action {
		case ActionReinstall:
			return "sudo apt-get install --reinstall -y " + pkg, nil
		case ActionUninstall:
			return "sudo apt-get remove -y " + pkg, nil
		default:
			return "sudo apt-get install -y " + pkg, nil
		}
	default: // winget
		switch action {
		case ActionReinstall:
			return "winget install --id " + pkg + " -e --force --accept-source-agreements --accept-package-agreements", nil
		case ActionUninstall:
			return "winget uninstall --id " + pkg + " -e", nil
		default:
			return "winget install --id " + pkg + " -e --accept-source-agreements --accept-package-agreements", nil
		}
	}
}

// Run performs action on dep, reporting every output line to onLine,
// starting with the command itself prefixed by "$ ". Canceling ctx kills
// the package manager and stops reporting; partial changes are not rolled
// back.
func (i *Installer) Run(ctx context.Context, action InstallAction, dep string, onLine func(string)) error {
	line, err := i.CommandLine(action, dep)
	if err != nil {
		return err
	}
	if onLine != nil {
		onLine("$ " + line)
	}
	if err := i.runner.Stream(ctx, line, onLine); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", ErrCommandFailed, action, dep, err)
	}
	return nil
}

func (i *Installer) manager() string {
	switch i.goos {
	case "darwin":
		return managerBrew
	case "linux":
		return managerApt
	case "windows":
		return managerWinget
	}
	return ""
}

func npmLine(action InstallAction, pkg string) string {
	switch action {
	case ActionReinstall:
		return "npm install -g --force " + pkg
	case ActionUninstall:
		return "npm uninstall -g " + pkg
	default:
		return "npm install -g " + pkg
	}
}
