package release

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"text/template"
)

// assetParams feeds the asset name template. OS and Arch let a single
// pattern serve multi-platform releases.
type assetParams struct {
	Name    string
	Version string
	OS      string
	Arch    string
}

// ResolveAssetName expands the asset pattern template for a repo and
// version on the current platform.
func ResolveAssetName(tmpl *template.Template, name, version string) (string, error) {
	var b strings.Builder
	params := assetParams{
		Name:    name,
		Version: version,
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if err := tmpl.Execute(&b, params); err != nil {
		return "", fmt.Errorf("expanding asset pattern: %w", err)
	}
	return b.String(), nil
}

// FindAsset checks a release's asset names for the expected one. A miss
// lists what the release actually shipped, sorted, so a wrong pattern
// is easy to diagnose.
func FindAsset(assets []string, expected string) (string, error) {
	for _, a := range assets {
		if a == expected {
			return a, nil
		}
	}
	sorted := append([]string(nil), assets...)
	sort.Strings(sorted)
	return "", fmt.Errorf("release has no asset %q (has: %s)", expected, strings.Join(sorted, ", "))
}
