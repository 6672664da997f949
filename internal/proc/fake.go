package proc

import (
	"context"
	"io"
	"strings"
	"sync"
)

// Call records a single invocation seen by the Fake.
type Call struct {
	Argv []string
	Mode string // "run" or "call"
}

func (c Call) String() string {
	return strings.Join(c.Argv, " ")
}

// Response is a pre-configured outcome for a command pattern.
type Response struct {
	Stdout string
	Stderr string
	Err    error
}

// Fake records invocations and returns pre-configured responses without
// spawning anything. Exported for use by collaborator tests.
type Fake struct {
	mu        sync.Mutex
	Calls     []Call
	responses map[string]Response // key: "name arg1 arg2..."
	fallback  Response
}

// NewFake creates a Fake with an empty response table.
func NewFake() *Fake {
	return &Fake{responses: make(map[string]Response)}
}

// SetResponse configures the outcome for a specific command string.
func (f *Fake) SetResponse(cmd string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmd] = resp
}

// SetFallback sets the outcome for unmatched commands.
func (f *Fake) SetFallback(resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback = resp
}

// Run records the call, writes the configured output to the Settings
// sinks, and returns the configured error.
func (f *Fake) Run(_ context.Context, set Settings, argv []string) error {
	if len(argv) == 0 {
		return &Error{Kind: CommandNotFound}
	}
	resp := f.record(argv, "run")
	if resp.Stdout != "" && set.Stdout != nil {
		io.WriteString(set.Stdout, resp.Stdout)
	}
	if resp.Stderr != "" && set.Stderr != nil {
		io.WriteString(set.Stderr, resp.Stderr)
	}
	return resp.Err
}

// Call records the call and returns the configured stdout, trimmed the
// way the real executor trims it.
func (f *Fake) Call(_ context.Context, _ Settings, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", &Error{Kind: CommandNotFound}
	}
	resp := f.record(argv, "call")
	if resp.Err != nil {
		return "", resp.Err
	}
	return strings.Trim(resp.Stdout, trimCutset), nil
}

func (f *Fake) record(argv []string, mode string) Response {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Argv: argv, Mode: mode}
	f.Calls = append(f.Calls, call)

	key := call.String()
	if resp, ok := f.responses[key]; ok {
		return resp
	}

	// Fall back to name plus first argument for broader matches.
	if len(argv) > 1 {
		if resp, ok := f.responses[argv[0]+" "+argv[1]]; ok {
			return resp
		}
	}
	if resp, ok := f.responses[argv[0]]; ok {
		return resp
	}
	return f.fallback
}

// Called returns true if a command matching the prefix was recorded.
func (f *Fake) Called(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if strings.HasPrefix(c.String(), prefix) {
			return true
		}
	}
	return false
}

// CallCount returns how many recorded commands match the prefix.
func (f *Fake) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c.String(), prefix) {
			n++
		}
	}
	return n
}

// Reset clears all recorded calls.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = nil
}

var (
	_ Executor = (*Fake)(nil)
	_ Executor = (*Local)(nil)
)
