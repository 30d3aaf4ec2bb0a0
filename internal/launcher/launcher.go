// Package launcher turns a catalog leaf into an external process and folds
// whatever the process printed into lines for display.
package launcher

import (
	"fmt"
	"strings"
	"time"

	"abandon/internal/config"
	"abandon/internal/descriptor"
	"abandon/internal/registry"

	"go.uber.org/zap"
)

// SilentFailureMessage is shown when a program exits non-zero without output
const SilentFailureMessage = "The program did not complete successfully but no output was captured."

// Options configures command construction
type Options struct {
	DOSBoxConfig     string            // Global DOSBox config fallback
	TerminalProgram  string            // Terminal emulator, may carry args
	TerminalGeometry string            // e.g. 120x50
	Programs         map[string]string // Runtime -> command override
}

// OptionsFromConfig extracts launcher options from the app config. Only
// overrides for known runtimes are kept.
func OptionsFromConfig(cfg *config.Config) Options {
	programs := make(map[string]string)
	for _, name := range registry.RuntimeNames() {
		if cmd, ok := cfg.Program(name); ok {
			programs[name] = cmd
		}
	}
	return Options{
		DOSBoxConfig:     cfg.DOSBoxConfig,
		TerminalProgram:  cfg.Terminal.Program,
		TerminalGeometry: cfg.Terminal.Geometry,
		Programs:         programs,
	}
}

// Launcher runs catalog entries
type Launcher struct {
	opts   Options
	runner Runner
	logger *zap.Logger
}

// New creates a Launcher. A nil runner uses ExecRunner, a nil logger
// discards log output.
func New(opts Options, runner Runner, logger *zap.Logger) *Launcher {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TerminalProgram == "" {
		opts.TerminalProgram = "uxterm"
	}
	return &Launcher{opts: opts, runner: runner, logger: logger}
}

// Activate launches d and blocks until the program exits, returning the
// lines to show the user. Categories return nothing and spawn nothing.
func (l *Launcher) Activate(d *descriptor.Descriptor) []string {
	if d == nil || d.IsCategory {
		return nil
	}

	cmd, err := l.Build(d)
	if err != nil {
		l.logger.Warn("cannot build command", zap.String("entry", d.BaseDir), zap.Error(err))
		return errorSection(fmt.Sprintf("Could not launch %s: %v", d.Name, err))
	}

	l.logger.Info("launching",
		zap.String("name", d.Name),
		zap.String("type", d.Type),
		zap.Strings("argv", cmd.Argv()),
		zap.String("dir", cmd.Dir),
	)

	start := time.Now()
	res, err := l.runner.Run(cmd)
	if err != nil {
		l.logger.Error("launch failed to start", zap.String("program", cmd.Program), zap.Error(err))
		return errorSection(fmt.Sprintf("Could not start %s: %v", cmd.Program, err))
	}

	l.logger.Info("program exited",
		zap.String("name", d.Name),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("stdout_bytes", len(res.Stdout)),
		zap.Int("stderr_bytes", len(res.Stderr)),
	)
	return FormatOutput(res)
}

// FormatOutput lays out captured output as labeled sections
func FormatOutput(res Result) []string {
	var lines []string
	if res.Stdout != "" {
		lines = append(lines, "Output:", "")
		lines = append(lines, splitLines(res.Stdout)...)
	}
	if res.Stderr != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, errorSection(res.Stderr)...)
	}
	if res.ExitCode != 0 && len(lines) == 0 {
		lines = append(lines, SilentFailureMessage)
	}
	return lines
}

func errorSection(text string) []string {
	return append([]string{"Errors:", ""}, splitLines(text)...)
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
