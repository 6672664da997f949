// Package netutil provides the small network helpers: ping and hostname
// front-ends over the execution core, and a TCP port poller.
package netutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ecairns22/ShellCaptain/internal/proc"
)

// Manager runs network commands through the execution core.
type Manager struct {
	exec proc.Executor
	set  proc.Settings
}

// New creates a network manager.
func New(ex proc.Executor, set proc.Settings) *Manager {
	return &Manager{exec: ex, set: set}
}

// Ping sends count echo requests to host, streaming ping's output.
func (m *Manager) Ping(ctx context.Context, host string, count int) error {
	if host == "" {
		return &proc.Error{Kind: proc.InvalidArg, Err: errors.New("host is empty")}
	}
	if count <= 0 {
		count = 3
	}

	if err := m.exec.Run(ctx, m.set, []string{"ping", "-c", strconv.Itoa(count), host}); err != nil {
		return fmt.Errorf("pinging %s: %w", host, err)
	}
	return nil
}

// Reachable reports whether host answers a single ping. Failures
// downgrade to false.
func (m *Manager) Reachable(ctx context.Context, host string) bool {
	if host == "" {
		return false
	}
	_, err := m.exec.Call(ctx, m.set, []string{"ping", "-c", "1", host})
	return err == nil
}

// Hostname returns the machine's hostname; a machine always has one, so
// empty output is a failure.
func (m *Manager) Hostname(ctx context.Context) (string, error) {
	out, err := proc.CallNonEmpty(ctx, m.exec, m.set, []string{"hostname"})
	if err != nil {
		return "", fmt.Errorf("resolving hostname: %w", err)
	}
	return out, nil
}

// WaitForPort polls localhost:<port> with TCP connections every second
// for up to the given timeout. Returns nil once a connection succeeds.
func WaitForPort(port int, timeout time.Duration) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 1*time.Second)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(1 * time.Second)
	}

	return fmt.Errorf("port %d not responding after %s", port, timeout)
}
