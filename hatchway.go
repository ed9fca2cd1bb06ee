package hatchway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/mzachh/hatchway/internal/logging"
	"github.com/mzachh/hatchway/internal/observability"
	"github.com/mzachh/hatchway/pkg/handshake"
)

// Version is the library version, surfaced by the CLI.
const Version = "0.1.0"

// PortFlag is the invocation contract: the child receives the handshake
// file path as the value of this flag and must write its record there.
const PortFlag = "--port-filename"

const (
	// DefaultPollInterval is the fixed delay between handshake reads.
	DefaultPollInterval = 20 * time.Millisecond

	// DefaultTimeout bounds Start so a child that crashes before writing
	// its record cannot block the caller forever. Disable with
	// WithTimeout(0) to restore unbounded waiting.
	DefaultTimeout = 30 * time.Second
)

// ErrNoCommand is returned by Start when the launcher has no command.
var ErrNoCommand = errors.New("hatchway: no command to launch")

// Launcher spawns a worker process and discovers the port it bound through
// a filesystem handshake. Each Start call allocates its own handshake file,
// so concurrent launchers never interfere.
//
// The launcher does not supervise the child: once the port is resolved the
// child's lifetime is the caller's concern.
type Launcher struct {
	command      string
	args         []string
	dir          string
	env          []string
	pollInterval time.Duration
	timeout      time.Duration
	stdout       io.Writer
	stderr       io.Writer
	logger       *slog.Logger
}

// Option defines a functional option for configuring the Launcher.
type Option func(*Launcher)

// WithArgs adds arguments placed before the handshake flag.
func WithArgs(args ...string) Option {
	return func(l *Launcher) {
		l.args = append(l.args, args...)
	}
}

// WithDir sets the child's working directory.
func WithDir(dir string) Option {
	return func(l *Launcher) {
		l.dir = dir
	}
}

// WithEnv appends "KEY=VALUE" entries to the child's inherited environment.
func WithEnv(env ...string) Option {
	return func(l *Launcher) {
		l.env = append(l.env, env...)
	}
}

// WithPollInterval sets the delay between handshake reads.
func WithPollInterval(d time.Duration) Option {
	return func(l *Launcher) {
		if d > 0 {
			l.pollInterval = d
		}
	}
}

// WithTimeout bounds the wait for a valid handshake. Zero disables the
// bound; cancellation then rests entirely on the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(l *Launcher) {
		l.timeout = d
	}
}

// WithStdout routes the child's stdout to w (discarded by default).
func WithStdout(w io.Writer) Option {
	return func(l *Launcher) {
		l.stdout = w
	}
}

// WithStderr routes the child's stderr to w (discarded by default).
func WithStderr(w io.Writer) Option {
	return func(l *Launcher) {
		l.stderr = w
	}
}

// WithLogger sets a custom structured logger for the launcher.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Launcher for command.
func New(command string, opts ...Option) *Launcher {
	l := &Launcher{
		command:      command,
		pollInterval: DefaultPollInterval,
		timeout:      DefaultTimeout,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start spawns the command and blocks until the child publishes the port it
// bound, the context is cancelled, or the launch fails.
//
// Failure is always distinct from success: a non-nil error means no port was
// resolved, and the returned port is meaningful only when the error is nil.
func (l *Launcher) Start(ctx context.Context) (int, error) {
	if l.command == "" {
		return 0, ErrNoCommand
	}

	portFile, err := os.CreateTemp("", "hatchway-port-*")
	if err != nil {
		return 0, fmt.Errorf("create handshake file: %w", err)
	}
	path := portFile.Name()
	portFile.Close()
	defer os.Remove(path)

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(l.args)+2)
	args = append(args, l.args...)
	args = append(args, PortFlag, path)

	cmd := exec.Command(l.command, args...)
	cmd.Dir = l.dir
	if len(l.env) > 0 {
		cmd.Env = append(cmd.Environ(), l.env...)
	}
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	started := time.Now()
	if err := cmd.Start(); err != nil {
		observability.RecordLaunch(observability.OutcomeSpawn, 0)
		return 0, fmt.Errorf("spawn %s: %w", l.command, err)
	}
	l.logger.Debug("worker started",
		"command", l.command,
		"pid", cmd.Process.Pid,
		"handshake", path,
	)

	// Reap the child when it exits so short-lived workers do not linger as
	// zombies. Port discovery never blocks on this.
	go func() { _ = cmd.Wait() }()

	port, err := l.waitForPort(ctx, path)
	if err != nil {
		observability.RecordLaunch(outcomeFor(err), 0)
		return 0, err
	}

	wait := time.Since(started)
	observability.RecordLaunch(observability.OutcomeOK, wait)
	l.logger.Info("port resolved",
		"command", l.command,
		"port", port,
		"wait", wait,
	)
	return port, nil
}

// waitForPort polls the handshake file until the child has written a
// complete record. Every iteration re-reads the full contents: an earlier
// partial read tells us nothing about where the sentinel will land.
func (l *Launcher) waitForPort(ctx context.Context, path string) (int, error) {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("waiting for handshake at %s: %w", path, ctx.Err())
		case <-ticker.C:
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read handshake file: %w", err)
		}

		port, err := handshake.ParsePort(data)
		if errors.Is(err, handshake.ErrIncomplete) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("handshake at %s: %w", path, err)
		}
		return port, nil
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return observability.OutcomeTimeout
	case errors.Is(err, handshake.ErrPortMissing), errors.Is(err, handshake.ErrPortInvalid):
		return observability.OutcomeMalformed
	default:
		return observability.OutcomeIO
	}
}
