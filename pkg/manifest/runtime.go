package manifest

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Probe reports the version of a locally installed runtime.
type Probe interface {
	Version(ctx context.Context) (string, error)
}

// ExecProbe runs a binary that prints its own version to stdout.
type ExecProbe struct {
	Binary  string
	Args    []string
	Timeout time.Duration
	// Trim is removed from the front of the output ("v" for node).
	Trim string
}

// NodeProbe queries `node -v`, which prints "v20.16.0".
func NodeProbe(binary string, timeout time.Duration) *ExecProbe {
	if binary == "" {
		binary = "node"
	}
	return &ExecProbe{Binary: binary, Args: []string{"-v"}, Timeout: timeout, Trim: "v"}
}

// PHPProbe asks the interpreter for PHP_VERSION.
func PHPProbe(binary string, timeout time.Duration) *ExecProbe {
	if binary == "" {
		binary = "php"
	}
	return &ExecProbe{Binary: binary, Args: []string{"-r", "echo PHP_VERSION . PHP_EOL;"}, Timeout: timeout}
}

func (p *ExecProbe) Version(ctx context.Context) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Binary, p.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("failed to run %s: %w: %s", p.Binary, err, msg)
		}
		return "", fmt.Errorf("failed to run %s: %w", p.Binary, err)
	}

	version := strings.TrimSpace(stdout.String())
	version = strings.TrimPrefix(version, p.Trim)
	if version == "" {
		return "", fmt.Errorf("%s printed no version", p.Binary)
	}
	return version, nil
}

// StaticProbe returns a fixed version. Useful when the runtime is not
// installed locally and the version is known from elsewhere.
type StaticProbe string

func (s StaticProbe) Version(ctx context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("no runtime version configured")
	}
	return string(s), nil
}
