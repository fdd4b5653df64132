package collector

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Command is one external program invocation.
type Command struct {
	Name string
	Args []string
	// Env holds extra KEY=VALUE pairs appended to the process environment.
	Env []string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Executor runs external commands and returns their combined output.
type Executor interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct{}

// Run executes cmd and returns stdout and stderr interleaved. On a non-zero
// exit the output is still returned along with an *exec.ExitError.
func (ExecExecutor) Run(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	out, err := c.CombinedOutput()
	if err != nil {
		return out, errors.Wrapf(err, "running %s", cmd)
	}
	return out, nil
}

// exitedWithOutput reports whether err is only a non-zero exit of a program
// that still produced output. smartctl and debsums encode findings in
// their exit status.
func exitedWithOutput(out []byte, err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && len(strings.TrimSpace(string(out))) > 0
}
