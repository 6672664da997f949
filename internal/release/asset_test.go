package release

import (
	"fmt"
	"runtime"
	"strings"
	"testing"
	"text/template"
)

func mustTemplate(t *testing.T, pattern string) *template.Template {
	t.Helper()
	tmpl, err := template.New("asset").Parse(pattern)
	if err != nil {
		t.Fatal(err)
	}
	return tmpl
}

func TestResolveAssetNameDefaultPattern(t *testing.T) {
	tmpl := mustTemplate(t, "{{.Name}}-linux-amd64")

	name, err := ResolveAssetName(tmpl, "shellcaptain", "v1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "shellcaptain-linux-amd64" {
		t.Errorf("name = %q, want %q", name, "shellcaptain-linux-amd64")
	}
}

func TestResolveAssetNameVersioned(t *testing.T) {
	tmpl := mustTemplate(t, "{{.Name}}_{{.Version}}_linux_amd64.tar.gz")

	name, err := ResolveAssetName(tmpl, "shellcaptain", "v2.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "shellcaptain_v2.1.0_linux_amd64.tar.gz" {
		t.Errorf("name = %q, want %q", name, "shellcaptain_v2.1.0_linux_amd64.tar.gz")
	}
}

func TestResolveAssetNamePlatform(t *testing.T) {
	tmpl := mustTemplate(t, "{{.Name}}-{{.OS}}-{{.Arch}}")

	name, err := ResolveAssetName(tmpl, "shellcaptain", "v1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := fmt.Sprintf("shellcaptain-%s-%s", runtime.GOOS, runtime.GOARCH)
	if name != want {
		t.Errorf("name = %q, want %q", name, want)
	}
}

func TestFindAssetMatch(t *testing.T) {
	assets := []string{"shellcaptain-linux-amd64", "shellcaptain-darwin-arm64", "checksums.txt"}

	got, err := FindAsset(assets, "shellcaptain-linux-amd64")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "shellcaptain-linux-amd64" {
		t.Errorf("got = %q, want %q", got, "shellcaptain-linux-amd64")
	}
}

func TestFindAssetMissListsShipped(t *testing.T) {
	assets := []string{"checksums.txt", "shellcaptain-darwin-arm64"}

	_, err := FindAsset(assets, "shellcaptain-linux-amd64")
	if err == nil {
		t.Fatal("expected error for missing asset")
	}
	msg := err.Error()
	if !strings.Contains(msg, "shellcaptain-darwin-arm64") || !strings.Contains(msg, "checksums.txt") {
		t.Errorf("error should list shipped assets, got: %v", err)
	}
	if strings.Index(msg, "checksums.txt") > strings.Index(msg, "shellcaptain-darwin-arm64") {
		t.Errorf("shipped assets should be sorted, got: %v", err)
	}
}
