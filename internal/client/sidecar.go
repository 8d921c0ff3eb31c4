package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/covenant-gov/1key/internal/logging"
	"github.com/covenant-gov/1key/internal/model"
)

const (
	defaultTimeout = 60 * time.Second
	// exitGrace is how long a worker may keep running after its response was read.
	exitGrace = 2 * time.Second
	// waitDelay bounds how long Wait blocks on stderr copying after the worker is gone.
	waitDelay = time.Second

	maxLineSize    = 16 << 20
	stderrTailSize = 4 << 10
)

// SidecarConfig configures a SidecarClient.
type SidecarConfig struct {
	Command string   // executable, e.g. "node" or a bundled "aztec-sidecar"
	Args    []string // e.g. the script path when Command is "node"
	Env     []string // extra KEY=VALUE pairs added to the inherited environment
	Dir     string   // working directory of the worker; empty means ours
	// Timeout bounds a whole call. Zero means the default (60s); a negative
	// value disables the client-side deadline and relies on the caller's context.
	Timeout time.Duration
	IDs     IDGenerator // nil means a process-wide counter
}

// SidecarClient calls methods on a worker process speaking line-delimited
// JSON-RPC over stdin/stdout. Every call spawns a fresh worker, sends one
// request and waits for the matching response.
type SidecarClient struct {
	command string
	args    []string
	env     []string
	dir     string
	timeout time.Duration
	ids     IDGenerator
}

// NewSidecarClient creates a new SidecarClient.
func NewSidecarClient(cfg SidecarConfig) (*SidecarClient, error) {
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, errors.New("sidecar command is empty")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ids := cfg.IDs
	if ids == nil {
		ids = defaultIDs
	}

	return &SidecarClient{
		command: cfg.Command,
		args:    append([]string(nil), cfg.Args...),
		env:     append([]string(nil), cfg.Env...),
		dir:     cfg.Dir,
		timeout: timeout,
		ids:     ids,
	}, nil
}

// Call spawns the worker, sends method with params and returns the raw JSON
// result. params may be nil, in which case "params" is sent as null.
//
// Errors: ErrSpawn, ErrProtocol, ErrNoResponse, ErrTimeout, a *SidecarError
// for errors reported by the worker, or the context error on cancellation.
func (c *SidecarClient) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize params: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, c.contextError(ctx)
	}

	// kill is separate from ctx so a finished call can stop a lingering worker
	// without that looking like a timeout.
	runCtx, kill := context.WithCancel(ctx)
	defer kill()

	cmd := exec.CommandContext(runCtx, c.command, c.args...)
	cmd.Dir = c.dir
	if len(c.env) > 0 {
		cmd.Env = append(os.Environ(), c.env...)
	}
	cmd.WaitDelay = waitDelay

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open stdin: %v", ErrSpawn, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open stdout: %v", ErrSpawn, err)
	}
	stderr := &tailBuffer{max: stderrTailSize}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpawn, c.command, err)
	}

	req := model.SidecarRequest{ID: c.ids.Next(), Method: method, Params: json.RawMessage(rawParams)}
	log := logging.L.With("method", method, "id", req.ID, "pid", cmd.Process.Pid)
	log.Debug("sidecar call started")

	result, callErr := exchange(stdin, stdout, req)
	if callErr != nil && !errors.Is(callErr, ErrNoResponse) && !IsSidecarError(callErr) {
		kill()
	}
	waitErr := reap(cmd, kill)

	if tail := stderr.String(); tail != "" {
		log.Debug("sidecar stderr", "output", tail)
	}

	if callErr == nil {
		if waitErr != nil {
			log.Debug("sidecar exited after responding", "err", waitErr)
		}
		return result, nil
	}
	if IsSidecarError(callErr) {
		log.Warn("sidecar reported error", "err", callErr)
		return nil, callErr
	}
	if ctx.Err() != nil {
		err := c.contextError(ctx)
		log.Warn("sidecar call aborted", "err", err)
		return nil, err
	}
	if errors.Is(callErr, ErrNoResponse) {
		callErr = describeExit(callErr, waitErr, stderr.String())
	}

	log.Warn("sidecar call failed", "err", callErr)
	return nil, callErr
}

func (c *SidecarClient) contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if c.timeout > 0 {
			return fmt.Errorf("%w (limit %s)", ErrTimeout, c.timeout)
		}
		return ErrTimeout
	}
	return fmt.Errorf("sidecar call canceled: %w", ctx.Err())
}

// exchange writes req as a single line, closes stdin and reads stdout until
// the response to req arrives.
func exchange(stdin io.WriteCloser, stdout io.Reader, req model.SidecarRequest) (json.RawMessage, error) {
	line, err := json.Marshal(req)
	if err != nil {
		_ = stdin.Close()
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}
	line = append(line, '\n')

	_, writeErr := stdin.Write(line)
	closeErr := stdin.Close() // one request per worker
	if writeErr != nil {
		return nil, fmt.Errorf("%w: failed to write to sidecar: %v", ErrProtocol, writeErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("%w: failed to close sidecar stdin: %v", ErrProtocol, closeErr)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	for scanner.Scan() {
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		var resp model.SidecarResponse
		if err := json.Unmarshal(text, &resp); err != nil {
			return nil, fmt.Errorf("%w: failed to parse response %q: %v", ErrProtocol, truncate(text, 200), err)
		}

		// Startup handshake: {"ready":true}
		if resp.Ready && resp.Result == nil && resp.Error == nil {
			continue
		}
		if resp.ID != nil && *resp.ID != req.ID {
			continue
		}
		if resp.Error != nil {
			return nil, &SidecarError{
				Code:    resp.Error.Code,
				Message: resp.Error.Message,
				Data:    resp.Error.Data,
			}
		}
		// "result":null decodes to the literal null and counts as an answer.
		if resp.Result != nil {
			return resp.Result, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read from sidecar: %v", ErrProtocol, err)
	}

	return nil, ErrNoResponse
}

// reap waits for the worker to exit, killing it if it is still running after exitGrace.
func reap(cmd *exec.Cmd, kill context.CancelFunc) error {
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(exitGrace)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		kill()
		return <-done
	}
}

func describeExit(err, waitErr error, stderr string) error {
	var details []string
	if waitErr != nil {
		details = append(details, waitErr.Error())
	}
	if stderr = strings.TrimSpace(stderr); stderr != "" {
		details = append(details, "stderr: "+stderr)
	}
	if len(details) == 0 {
		return err
	}
	return fmt.Errorf("%w (%s)", err, strings.Join(details, "; "))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return string(t.buf)
}
