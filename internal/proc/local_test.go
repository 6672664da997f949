package proc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

// testSettings returns Settings writing to fresh buffers with a silent logger.
func testSettings(t *testing.T, bufSize int) (Settings, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	set := Settings{
		MaxBufferSize: bufSize,
		Stdout:        &stdout,
		Stderr:        &stderr,
		Logger:        log.New(io.Discard),
	}
	return set, &stdout, &stderr
}

// spyLocal wraps the real spawn with a counter so tests can assert that
// no process was started.
func spyLocal() (*Local, *int) {
	count := 0
	l := NewLocal()
	real := l.spawn
	l.spawn = func(ctx context.Context, argv []string) (*handle, error) {
		count++
		return real(ctx, argv)
	}
	return l, &count
}

func TestRunEmptyArgv(t *testing.T) {
	l, spawns := spyLocal()
	set, _, _ := testSettings(t, 4096)

	err := l.Run(context.Background(), set, nil)
	if !IsKind(err, CommandNotFound) {
		t.Fatalf("expected CommandNotFound, got %v", err)
	}
	if *spawns != 0 {
		t.Errorf("expected no spawn for empty argv, got %d", *spawns)
	}
}

func TestCallEmptyArgv(t *testing.T) {
	l, spawns := spyLocal()
	set, _, _ := testSettings(t, 4096)

	_, err := l.Call(context.Background(), set, []string{})
	if !IsKind(err, CommandNotFound) {
		t.Fatalf("expected CommandNotFound, got %v", err)
	}
	if *spawns != 0 {
		t.Errorf("expected no spawn for empty argv, got %d", *spawns)
	}
}

func TestRunRelaysBothStreams(t *testing.T) {
	l := NewLocal()
	set, stdout, stderr := testSettings(t, 4096)

	err := l.Run(context.Background(), set, ShellCommand("printf 'one two'; printf 'diag' >&2"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := stdout.String(); got != "one two" {
		t.Errorf("stdout = %q, want %q", got, "one two")
	}
	if got := stderr.String(); got != "diag" {
		t.Errorf("stderr = %q, want %q", got, "diag")
	}
}

func TestRunTinyChunksPreserveOrder(t *testing.T) {
	l := NewLocal()
	set, stdout, _ := testSettings(t, 2)

	err := l.Run(context.Background(), set, []string{"echo", "-n", "abcdefgh"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := stdout.String(); got != "abcdefgh" {
		t.Errorf("stdout = %q, want %q", got, "abcdefgh")
	}
}

func TestRunNonZeroExit(t *testing.T) {
	l := NewLocal()
	set, _, _ := testSettings(t, 4096)

	err := l.Run(context.Background(), set, []string{"false"})
	if !IsKind(err, ProcessFailed) {
		t.Fatalf("expected ProcessFailed, got %v", err)
	}
}

func TestRunStderrHeavyChildDoesNotDeadlock(t *testing.T) {
	// A child writing far more than one pipe buffer to stderr before
	// finishing stdout would hang a sequential drain.
	l := NewLocal()
	set, _, stderr := testSettings(t, 4096)

	script := "i=0; while [ $i -lt 3000 ]; do echo 'eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee' >&2; i=$((i+1)); done; echo done"
	err := l.Run(context.Background(), set, ShellCommand(script))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stderr.Len() < 3000*33 {
		t.Errorf("stderr relay incomplete: %d bytes", stderr.Len())
	}
}

func TestCallSimple(t *testing.T) {
	l := NewLocal()
	set, _, _ := testSettings(t, DefaultCaptureMaxBytes)

	out, err := l.Call(context.Background(), set, []string{"echo", "-n", "ok"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != "ok" {
		t.Errorf("out = %q, want %q", out, "ok")
	}
}

func TestCallTrimsWhitespace(t *testing.T) {
	l := NewLocal()
	set, _, _ := testSettings(t, DefaultCaptureMaxBytes)

	out, err := l.Call(context.Background(), set, ShellCommand(`printf ' \thello \n'`))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != "hello" {
		t.Errorf("out = %q, want %q", out, "hello")
	}
}

func TestCallEmptyOutputIsSuccess(t *testing.T) {
	// A command that produces nothing is a legitimate empty result; only
	// CallNonEmpty turns it into a failure.
	l := NewLocal()
	set, _, _ := testSettings(t, DefaultCaptureMaxBytes)

	out, err := l.Call(context.Background(), set, []string{"true"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != "" {
		t.Errorf("out = %q, want empty", out)
	}

	_, err = CallNonEmpty(context.Background(), l, set, ShellCommand(`printf ' \n\t'`))
	if !IsKind(err, UserNotFound) {
		t.Fatalf("expected UserNotFound from CallNonEmpty, got %v", err)
	}
}

func TestCallNonZeroExitDiscardsStdout(t *testing.T) {
	l := NewLocal()
	set, _, _ := testSettings(t, DefaultCaptureMaxBytes)

	out, err := l.Call(context.Background(), set, ShellCommand("echo partial; echo boom >&2; exit 3"))
	if out != "" {
		t.Errorf("stdout should be discarded on failure, got %q", out)
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != ProcessFailed {
		t.Fatalf("expected ProcessFailed, got %v", err)
	}
	if pe.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", pe.ExitCode)
	}
	if pe.Stderr != "boom" {
		t.Errorf("stderr = %q, want %q", pe.Stderr, "boom")
	}
}

func TestCallStderrNotReturned(t *testing.T) {
	l := NewLocal()
	set, _, _ := testSettings(t, DefaultCaptureMaxBytes)

	out, err := l.Call(context.Background(), set, ShellCommand("echo value; echo noise >&2"))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != "value" {
		t.Errorf("out = %q, want %q", out, "value")
	}
}

func TestCallOutputTooLarge(t *testing.T) {
	l := NewLocal()
	set, _, _ := testSettings(t, 16)

	_, err := l.Call(context.Background(), set, ShellCommand("printf '0123456789abcdef0123456789abcdef'"))
	if !IsKind(err, OutputTooLarge) {
		t.Fatalf("expected OutputTooLarge, got %v", err)
	}
}

func TestSpawnFailure(t *testing.T) {
	l := NewLocal()
	set, _, _ := testSettings(t, 4096)

	err := l.Run(context.Background(), set, []string{"/nonexistent/binary-xyzzy"})
	if !IsKind(err, SpawnFailed) {
		t.Fatalf("expected SpawnFailed, got %v", err)
	}
	_, err = l.Call(context.Background(), set, []string{"/nonexistent/binary-xyzzy"})
	if !IsKind(err, SpawnFailed) {
		t.Fatalf("expected SpawnFailed, got %v", err)
	}
}

func TestInvalidSettings(t *testing.T) {
	l := NewLocal()
	set, _, _ := testSettings(t, 0)

	if err := l.Run(context.Background(), set, []string{"true"}); !IsKind(err, InvalidArg) {
		t.Errorf("expected InvalidArg for zero buffer size, got %v", err)
	}
	if _, err := l.Call(context.Background(), set, []string{"true"}); !IsKind(err, InvalidArg) {
		t.Errorf("expected InvalidArg for zero buffer size, got %v", err)
	}
}

func TestConcurrentInvocations(t *testing.T) {
	l := NewLocal()

	const workers = 8
	var wg sync.WaitGroup
	results := make([]string, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set, _, _ := testSettings(t, DefaultCaptureMaxBytes)
			results[i], errs[i] = l.Call(context.Background(), set, []string{"echo", "-n", "ok"})
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if results[i] != "ok" {
			t.Errorf("worker %d: result = %q, want %q", i, results[i], "ok")
		}
	}
}

func TestShellCommand(t *testing.T) {
	argv := ShellCommand("echo hi | cat")
	want := []string{"sh", "-c", "echo hi | cat"}
	if strings.Join(argv, "\x00") != strings.Join(want, "\x00") {
		t.Errorf("argv = %v, want %v", argv, want)
	}
}
