package gitops

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ecairns22/ShellCaptain/internal/proc"
)

func newTestManager(t *testing.T) (*Manager, *proc.Fake) {
	t.Helper()
	fake := proc.NewFake()
	set := proc.CaptureSettings(log.New(io.Discard))
	set.Stdout = io.Discard
	set.Stderr = io.Discard
	return New(fake, set), fake
}

func TestClone(t *testing.T) {
	m, fake := newTestManager(t)

	err := m.Clone(context.Background(), "https://example.com/repo.git", "/tmp/repo")
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if !fake.Called("git clone https://example.com/repo.git /tmp/repo") {
		t.Errorf("unexpected argv: %v", fake.Calls)
	}
}

func TestCloneEmptyURL(t *testing.T) {
	m, fake := newTestManager(t)

	if err := m.Clone(context.Background(), "", "/tmp/repo"); !proc.IsKind(err, proc.InvalidArg) {
		t.Fatalf("expected InvalidArg, got %v", err)
	}
	if len(fake.Calls) != 0 {
		t.Error("no command should run")
	}
}

func TestPullAndCheckout(t *testing.T) {
	m, fake := newTestManager(t)
	dir := t.TempDir()

	if err := m.Pull(context.Background(), dir); err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if !fake.Called("git -C " + dir + " pull") {
		t.Errorf("unexpected argv: %v", fake.Calls)
	}

	if err := m.Checkout(context.Background(), dir, "v1.2.0"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !fake.Called("git -C " + dir + " checkout v1.2.0") {
		t.Errorf("unexpected argv: %v", fake.Calls)
	}
}

func TestCheckoutMissingDir(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Checkout(context.Background(), "/nonexistent-dir-xyzzy", "main"); !proc.IsKind(err, proc.InvalidPath) {
		t.Fatalf("expected InvalidPath, got %v", err)
	}
}

func TestCurrentBranch(t *testing.T) {
	m, fake := newTestManager(t)
	dir := t.TempDir()
	fake.SetResponse("git -C "+dir+" rev-parse --abbrev-ref HEAD", proc.Response{Stdout: "main\n"})

	branch, err := m.CurrentBranch(context.Background(), dir)
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "main" {
		t.Errorf("branch = %q", branch)
	}
}

func TestCurrentBranchEmptyOutput(t *testing.T) {
	m, fake := newTestManager(t)
	dir := t.TempDir()
	fake.SetResponse("git", proc.Response{Stdout: "\n"})

	if _, err := m.CurrentBranch(context.Background(), dir); !proc.IsKind(err, proc.UserNotFound) {
		t.Fatalf("expected UserNotFound for empty branch output, got %v", err)
	}
}

func TestIsRepoDowngrades(t *testing.T) {
	m, fake := newTestManager(t)
	dir := t.TempDir()

	fake.SetResponse("git", proc.Response{Err: &proc.Error{Kind: proc.ProcessFailed, ExitCode: 128}})
	if m.IsRepo(context.Background(), dir) {
		t.Error("failure should downgrade to false")
	}

	fake.SetResponse("git", proc.Response{Stdout: "true\n"})
	if !m.IsRepo(context.Background(), dir) {
		t.Error("expected true")
	}

	if m.IsRepo(context.Background(), "/nonexistent-dir-xyzzy") {
		t.Error("missing dir should be false")
	}
}
