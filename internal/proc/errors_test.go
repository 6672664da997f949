package proc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: ProcessFailed, Argv: []string{"git", "pull"}, ExitCode: 128, Stderr: "fatal: not a git repository"}
	msg := e.Error()
	for _, want := range []string{"process failed", "git pull", "exit status 128", "not a git repository"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestIsKind(t *testing.T) {
	base := &Error{Kind: InvalidPath}
	wrapped := fmt.Errorf("copying: %w", base)

	if !IsKind(wrapped, InvalidPath) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(wrapped, ProcessFailed) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), InvalidPath) {
		t.Error("IsKind matched a non-core error")
	}
	if IsKind(nil, InvalidPath) {
		t.Error("IsKind matched nil")
	}
}

func TestKindOf(t *testing.T) {
	if k, ok := KindOf(&Error{Kind: OutputTooLarge}); !ok || k != OutputTooLarge {
		t.Errorf("KindOf = %v, %v", k, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf matched a non-core error")
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("permission denied")
	e := &Error{Kind: SpawnFailed, Err: inner}
	if !errors.Is(e, inner) {
		t.Error("Unwrap should expose the underlying error")
	}
}

func TestFakeRecordsAndResponds(t *testing.T) {
	f := NewFake()
	f.SetResponse("whoami", Response{Stdout: "deploy\n"})
	f.SetFallback(Response{Err: &Error{Kind: ProcessFailed, ExitCode: 1}})

	set, _, _ := testSettings(t, 4096)
	out, err := f.Call(context.Background(), set, []string{"whoami"})
	if err != nil || out != "deploy" {
		t.Fatalf("Call = %q, %v", out, err)
	}

	if err := f.Run(context.Background(), set, []string{"unmatched"}); !IsKind(err, ProcessFailed) {
		t.Errorf("fallback not applied: %v", err)
	}

	if got := f.CallCount("whoami"); got != 1 {
		t.Errorf("CallCount = %d, want 1", got)
	}
	if !f.Called("unmatched") {
		t.Error("expected unmatched to be recorded")
	}

	if _, err := f.Call(context.Background(), set, nil); !IsKind(err, CommandNotFound) {
		t.Errorf("empty argv: %v", err)
	}
}
