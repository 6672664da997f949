// Package pathutil resolves programs and checks paths for the other
// collaborators.
package pathutil

import (
	"context"
	"errors"
	"os"

	"github.com/ecairns22/ShellCaptain/internal/proc"
)

// Which resolves a program name to its path using the which binary.
func Which(ctx context.Context, ex proc.Executor, set proc.Settings, name string) (string, error) {
	if name == "" {
		return "", &proc.Error{Kind: proc.InvalidArg, Err: errors.New("program name is empty")}
	}
	return proc.CallNonEmpty(ctx, ex, set, []string{"which", name})
}

// Available is the boolean probe for "does this command exist": any
// failure kind from the captured call is deliberately downgraded to
// false.
func Available(ctx context.Context, ex proc.Executor, set proc.Settings, name string) bool {
	_, err := Which(ctx, ex, set, name)
	return err == nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
