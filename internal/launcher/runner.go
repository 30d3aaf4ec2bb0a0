package launcher

import (
	"bytes"
	"errors"
	"os/exec"
)

// Command is a fully built process invocation
type Command struct {
	Program string
	Args    []string
	Dir     string // Working directory for the process only
}

// Argv returns program followed by its arguments
func (c Command) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// Result is what a finished process left behind
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner spawns a process and waits for it
type Runner interface {
	// Run blocks until the process exits. A non-zero exit is reported in
	// Result, not as an error; the error is reserved for failing to start.
	Run(cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run executes cmd with its own working directory and captures its output
func (ExecRunner) Run(cmd Command) (Result, error) {
	c := exec.Command(cmd.Program, cmd.Args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, err
	}
	return res, nil
}
