package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"abandon/internal/descriptor"
	"abandon/internal/registry"

	"github.com/google/shlex"
)

// EntryConfigName is the per-entry DOSBox configuration looked up in an
// entry's directory before falling back to the global one
const EntryConfigName = "abandon.conf"

type buildFunc func(l *Launcher, d *descriptor.Descriptor, rt registry.Runtime) (Command, error)

var builders = map[registry.Strategy]buildFunc{
	registry.StrategyDOSBox:   buildDOSBox,
	registry.StrategyDirect:   buildDirect,
	registry.StrategyTerminal: buildTerminal,
}

// Build returns the command that would launch d
func (l *Launcher) Build(d *descriptor.Descriptor) (Command, error) {
	rt, ok := registry.Resolve(d.Type)
	if !ok {
		return Command{}, fmt.Errorf("unknown type %q", d.Type)
	}
	build, ok := builders[rt.Strategy]
	if !ok {
		return Command{}, fmt.Errorf("no launch strategy for %s", rt.Strategy)
	}

	cmd, err := build(l, d, rt)
	if err != nil {
		return Command{}, err
	}
	cmd.Dir = d.BaseDir
	return cmd, nil
}

// programWords returns the program and any leading args for a runtime,
// honoring a configured override
func (l *Launcher) programWords(rt registry.Runtime) ([]string, error) {
	override, ok := l.opts.Programs[rt.Program]
	if !ok || strings.TrimSpace(override) == "" {
		return []string{rt.Program}, nil
	}
	return splitCommand(override)
}

func splitCommand(s string) ([]string, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", s, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return words, nil
}

// entryConfig returns the DOSBox config to use for d
func (l *Launcher) entryConfig(d *descriptor.Descriptor) string {
	cfg := filepath.Join(d.BaseDir, EntryConfigName)
	if _, err := os.Stat(cfg); err == nil {
		return cfg
	}
	return l.opts.DOSBoxConfig
}

func buildDOSBox(l *Launcher, d *descriptor.Descriptor, rt registry.Runtime) (Command, error) {
	words, err := l.programWords(rt)
	if err != nil {
		return Command{}, err
	}
	cfg := l.entryConfig(d)

	args := append(words[1:],
		"-c", fmt.Sprintf("mount c \"%s\"", d.BaseDir),
		"-c", "c:",
		"-c", "echo Using "+cfg,
		"-conf", cfg,
	)
	if d.HasResource() {
		args = append(args, "-c", d.Resource)
	}
	return Command{Program: words[0], Args: args}, nil
}

func buildDirect(l *Launcher, d *descriptor.Descriptor, rt registry.Runtime) (Command, error) {
	words, err := l.programWords(rt)
	if err != nil {
		return Command{}, err
	}
	return Command{Program: words[0], Args: append(words[1:], d.ResourcePath)}, nil
}

// buildTerminal wraps the interpreter in a new terminal window. The terminal
// starts in its own default directory whatever the spawn cwd is, so the
// inner shell changes into the entry dir itself.
func buildTerminal(l *Launcher, d *descriptor.Descriptor, rt registry.Runtime) (Command, error) {
	term, err := splitCommand(l.opts.TerminalProgram)
	if err != nil {
		return Command{}, fmt.Errorf("terminal: %w", err)
	}
	interp := rt.Program
	if override, ok := l.opts.Programs[rt.Program]; ok && strings.TrimSpace(override) != "" {
		if _, err := splitCommand(override); err != nil {
			return Command{}, err
		}
		interp = strings.TrimSpace(override)
	}

	args := term[1:]
	if l.opts.TerminalGeometry != "" {
		args = append(args, "-geometry", l.opts.TerminalGeometry)
	}
	args = append(args, "-e", fmt.Sprintf("cd \"%s\"; %s \"%s\"", d.BaseDir, interp, d.Resource))
	return Command{Program: term[0], Args: args}, nil
}
