// Package release fetches program binaries from GitHub release assets.
package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"text/template"

	gh "github.com/google/go-github/v60/github"
)

// Client resolves and downloads release assets.
type Client struct {
	api          *gh.Client
	httpClient   *http.Client
	defaultOwner string
	assetTmpl    *template.Template
}

// New creates a client with the given token, default owner, and asset
// pattern. An empty token gives unauthenticated (rate-limited) access,
// which is enough for public repositories.
func New(token, defaultOwner, assetPattern string) (*Client, error) {
	httpClient := &http.Client{}
	api := gh.NewClient(httpClient)
	if token != "" {
		api = api.WithAuthToken(token)
	}
	return newWithClients(api, httpClient, defaultOwner, assetPattern)
}

// newWithClients wires injected HTTP and GitHub clients (for testing).
func newWithClients(api *gh.Client, httpClient *http.Client, defaultOwner, assetPattern string) (*Client, error) {
	tmpl, err := template.New("asset").Parse(assetPattern)
	if err != nil {
		return nil, fmt.Errorf("parsing asset pattern %q: %w", assetPattern, err)
	}
	return &Client{
		api:          api,
		httpClient:   httpClient,
		defaultOwner: defaultOwner,
		assetTmpl:    tmpl,
	}, nil
}

func (c *Client) owner(owner string) string {
	if owner == "" {
		return c.defaultOwner
	}
	return owner
}

// ResolveVersion turns "latest" (or an empty version) into the actual
// release tag. Explicit versions pass through untouched.
func (c *Client) ResolveVersion(ctx context.Context, owner, repo, version string) (string, error) {
	if version != "latest" && version != "" {
		return version, nil
	}

	owner = c.owner(owner)
	rel, _, err := c.api.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("getting latest release for %s/%s: %w", owner, repo, err)
	}
	return rel.GetTagName(), nil
}

// Download fetches the asset matching the configured pattern into
// destDir as <repo>-<version>, executable. Returns the written path.
func (c *Client) Download(ctx context.Context, owner, repo, version, destDir string) (string, error) {
	owner = c.owner(owner)

	rel, _, err := c.api.Repositories.GetReleaseByTag(ctx, owner, repo, version)
	if err != nil {
		return "", fmt.Errorf("getting release %s for %s/%s: %w", version, owner, repo, err)
	}

	expected, err := ResolveAssetName(c.assetTmpl, repo, version)
	if err != nil {
		return "", err
	}

	asset := pickAsset(rel.Assets, expected)
	if asset == nil {
		names := make([]string, 0, len(rel.Assets))
		for _, a := range rel.Assets {
			names = append(names, a.GetName())
		}
		_, err := FindAsset(names, expected)
		return "", err
	}

	rc, _, err := c.api.Repositories.DownloadReleaseAsset(ctx, owner, repo, asset.GetID(), c.httpClient)
	if err != nil {
		return "", fmt.Errorf("downloading asset %s: %w", expected, err)
	}
	defer rc.Close()

	destPath := filepath.Join(destDir, fmt.Sprintf("%s-%s", repo, version))
	if err := writeExecutable(destPath, rc); err != nil {
		return "", err
	}
	return destPath, nil
}

func pickAsset(assets []*gh.ReleaseAsset, name string) *gh.ReleaseAsset {
	for _, a := range assets {
		if a.GetName() == name {
			return a
		}
	}
	return nil
}

func writeExecutable(path string, src io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	// umask can knock the execute bits off O_CREATE's mode.
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
