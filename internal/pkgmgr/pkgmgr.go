// Package pkgmgr fronts the system package manager. It detects which
// tool is installed, translates install/remove/update requests into that
// tool's argument list, and streams the tool's output through the
// execution core.
package pkgmgr

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecairns22/ShellCaptain/internal/pathutil"
	"github.com/ecairns22/ShellCaptain/internal/proc"
)

// tool describes one supported package manager front-end.
type tool struct {
	name    string
	install []string
	remove  []string
	update  []string
}

// Detection order: Debian-likes first, matching where this tool is
// usually deployed.
var tools = []tool{
	{
		name:    "apt-get",
		install: []string{"apt-get", "install", "-y"},
		remove:  []string{"apt-get", "remove", "-y"},
		update:  []string{"apt-get", "upgrade", "-y"},
	},
	{
		name:    "dnf",
		install: []string{"dnf", "install", "-y"},
		remove:  []string{"dnf", "remove", "-y"},
		update:  []string{"dnf", "upgrade", "-y"},
	},
	{
		name:    "pacman",
		install: []string{"pacman", "-S", "--noconfirm"},
		remove:  []string{"pacman", "-R", "--noconfirm"},
		update:  []string{"pacman", "-Syu", "--noconfirm"},
	},
	{
		name:    "apk",
		install: []string{"apk", "add"},
		remove:  []string{"apk", "del"},
		update:  []string{"apk", "upgrade"},
	},
}

// Manager translates package operations into one detected tool's argv.
type Manager struct {
	exec     proc.Executor
	set      proc.Settings
	tool     tool
	escalate string
}

// Detect finds the first supported package manager on PATH. escalate,
// when non-empty, is prepended to every argument list as an ordinary
// first element; the core gives it no special handling, so tools that
// prompt on a closed stdin will fail rather than hang silently waiting.
func Detect(ctx context.Context, ex proc.Executor, set proc.Settings, escalate string) (*Manager, error) {
	for _, tl := range tools {
		if pathutil.Available(ctx, ex, set, tl.name) {
			return &Manager{exec: ex, set: set, tool: tl, escalate: escalate}, nil
		}
	}
	return nil, fmt.Errorf("no supported package manager found (looked for apt-get, dnf, pacman, apk)")
}

// NewWithTool builds a manager for a named tool without probing PATH.
func NewWithTool(ex proc.Executor, set proc.Settings, name, escalate string) (*Manager, error) {
	for _, tl := range tools {
		if tl.name == name {
			return &Manager{exec: ex, set: set, tool: tl, escalate: escalate}, nil
		}
	}
	return nil, fmt.Errorf("unsupported package manager %q", name)
}

// Name returns the detected tool's name.
func (m *Manager) Name() string {
	return m.tool.name
}

// Install installs the given packages, streaming the tool's output.
func (m *Manager) Install(ctx context.Context, pkgs ...string) error {
	argv, err := m.argv(m.tool.install, pkgs)
	if err != nil {
		return err
	}
	if err := m.exec.Run(ctx, m.set, argv); err != nil {
		return fmt.Errorf("installing %v with %s: %w", pkgs, m.tool.name, err)
	}
	return nil
}

// Remove removes the given packages.
func (m *Manager) Remove(ctx context.Context, pkgs ...string) error {
	argv, err := m.argv(m.tool.remove, pkgs)
	if err != nil {
		return err
	}
	if err := m.exec.Run(ctx, m.set, argv); err != nil {
		return fmt.Errorf("removing %v with %s: %w", pkgs, m.tool.name, err)
	}
	return nil
}

// Update upgrades all installed packages.
func (m *Manager) Update(ctx context.Context) error {
	argv, err := m.argv(m.tool.update, nil)
	if err != nil {
		return err
	}
	if err := m.exec.Run(ctx, m.set, argv); err != nil {
		return fmt.Errorf("updating packages with %s: %w", m.tool.name, err)
	}
	return nil
}

// argv assembles escalate-prefix + base + packages, validating names.
func (m *Manager) argv(base []string, pkgs []string) ([]string, error) {
	for _, p := range pkgs {
		if p == "" {
			return nil, &proc.Error{Kind: proc.InvalidArg, Err: errors.New("package name is empty")}
		}
	}

	var argv []string
	if m.escalate != "" {
		argv = append(argv, m.escalate)
	}
	argv = append(argv, base...)
	argv = append(argv, pkgs...)
	return argv, nil
}
