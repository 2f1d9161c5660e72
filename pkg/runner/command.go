package runner

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/npmparser/npmparser/pkg/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// InvocationError reports that npm could not be run at all.
type InvocationError struct {
	Args []string
	Err  error
}

func (e *InvocationError) Error() string {
	return "failed to run " + strings.Join(e.Args, " ") + ": " + e.Err.Error()
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Command runs npm as a child process.
type Command struct {
	Path string
	Dir  string
	// Env is appended to the current environment.
	Env []string
	// Retries is how often a failed launch is retried. Non-zero exits are
	// never retried.
	Retries uint64
	Backoff time.Duration
}

func NewCommand(cfg *config.Config) *Command {
	return &Command{
		Path:    cfg.NPM,
		Dir:     cfg.Dir,
		Retries: cfg.LaunchRetries,
		Backoff: cfg.LaunchBackoff,
	}
}

func (c *Command) Invoke(ctx context.Context, args ...string) (Output, error) {
	var out Output
	attempt := 0
	run := func() error {
		attempt++
		cmd := exec.CommandContext(ctx, c.Path, args...)
		cmd.Dir = c.Dir
		if len(c.Env) > 0 {
			cmd.Env = append(os.Environ(), c.Env...)
		}
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		var exitErr *exec.ExitError
		switch {
		case err == nil:
		case errors.As(err, &exitErr):
			out.ExitCode = exitErr.ExitCode()
		case errors.Is(err, exec.ErrNotFound):
			return backoff.Permanent(err)
		default:
			log.Debugf("Launching %s failed on attempt %d: %v", c.Path, attempt, err)
			return err
		}
		out.Stdout = stdout.Bytes()
		out.Stderr = stderr.Bytes()
		return nil
	}

	b := backoff.NewExponentialBackOff()
	if c.Backoff > 0 {
		b.InitialInterval = c.Backoff
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.Retries), ctx)
	if err := backoff.Retry(run, policy); err != nil {
		return Output{}, &InvocationError{Args: append([]string{c.Path}, args...), Err: err}
	}
	return out, nil
}
