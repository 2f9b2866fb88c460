package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// Chunk is a single line of streamed command output.
type Chunk struct {
	// Data is the line content including the trailing newline.
	Data []byte

	// Done indicates if this is the final chunk.
	Done bool

	// Error if the command failed.
	Error error
}

// Executor runs a single binary with a timeout.
type Executor struct {
	runner     CommandRunner
	binaryPath string
	timeout    time.Duration
}

// NewExecutor creates an executor for a binary found on PATH or at an explicit path.
func NewExecutor(binary string, timeout time.Duration) (*Executor, error) {
	binaryPath, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("binary not found: %w", err)
	}

	return &Executor{
		binaryPath: binaryPath,
		timeout:    timeout,
		runner:     ExecCommandRunner{},
	}, nil
}

// NewExecutorWithRunner creates an executor with a custom runner.
func NewExecutorWithRunner(binaryPath string, timeout time.Duration, runner CommandRunner) *Executor {
	return &Executor{
		binaryPath: binaryPath,
		timeout:    timeout,
		runner:     runner,
	}
}

// Execute runs the command and returns its output.
func (e *Executor) Execute(ctx context.Context, args []string, stdin io.Reader) (stdout, stderr []byte, err error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	return e.runner.Run(ctx, e.binaryPath, args, stdin)
}

// Stream runs the command and streams stdout line by line.
// The last chunk always has Done set; its Error carries stderr when the command fails.
func (e *Executor) Stream(ctx context.Context, args []string, stdin io.Reader) (<-chan Chunk, error) {
	ctx, cancel := e.withTimeout(ctx)

	stdout, stderr, wait, err := e.runner.Start(ctx, e.binaryPath, args, stdin)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("executor: failed to start command: %w", err)
	}

	ch := make(chan Chunk, 32)

	go func() {
		defer close(ch)
		defer cancel()

		stderrBuf := new(bytes.Buffer)
		stderrDone := make(chan struct{})
		go func() {
			if _, err := io.Copy(stderrBuf, stderr); err != nil && !errors.Is(err, os.ErrClosed) {
				slog.Error("Failed to read stderr", "error", err)
			}
			close(stderrDone)
		}()

		// abort kills the process and reaps it; Wait closes the pipes so the
		// stderr copier returns too.
		abort := func(err error) {
			cancel()
			_ = wait()
			<-stderrDone
			ch <- Chunk{Error: err, Done: true}
		}

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := append(append([]byte(nil), scanner.Bytes()...), '\n')
			select {
			case <-ctx.Done():
				abort(ctx.Err())
				return
			case ch <- Chunk{Data: line}:
			}
		}

		if err := scanner.Err(); err != nil {
			abort(err)
			return
		}

		<-stderrDone
		if err := wait(); err != nil {
			if s := bytes.TrimSpace(stderrBuf.Bytes()); len(s) > 0 {
				ch <- Chunk{Error: fmt.Errorf("%w: %s", err, s), Done: true}
			} else {
				ch <- Chunk{Error: err, Done: true}
			}
			return
		}

		ch <- Chunk{Done: true}
	}()

	return ch, nil
}

func (e *Executor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}
