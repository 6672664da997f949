package release

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	gh "github.com/google/go-github/v60/github"
)

func ptr[T any](v T) *T { return &v }

func setupTestServer(t *testing.T) *gh.Client {
	t.Helper()
	mux := http.NewServeMux()

	// go-github prepends /api/v3 with WithEnterpriseURLs
	mux.HandleFunc("GET /api/v3/repos/testowner/mytool/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		resp := gh.RepositoryRelease{
			TagName: ptr("v2.0.0"),
			Assets: []*gh.ReleaseAsset{
				{ID: ptr(int64(1)), Name: ptr("mytool-linux-amd64")},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("GET /api/v3/repos/testowner/mytool/releases/tags/v1.0.0", func(w http.ResponseWriter, r *http.Request) {
		resp := gh.RepositoryRelease{
			TagName: ptr("v1.0.0"),
			Assets: []*gh.ReleaseAsset{
				{ID: ptr(int64(10)), Name: ptr("mytool-linux-amd64"), Size: ptr(14)},
				{ID: ptr(int64(11)), Name: ptr("mytool-darwin-arm64"), Size: ptr(14)},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("GET /api/v3/repos/testowner/mytool/releases/assets/10", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") == "application/octet-stream" {
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write([]byte("binary-content"))
			return
		}
		json.NewEncoder(w).Encode(gh.ReleaseAsset{ID: ptr(int64(10)), Name: ptr("mytool-linux-amd64")})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := gh.NewClient(nil).WithAuthToken("test-token")
	baseURL := server.URL + "/"
	client, _ = client.WithEnterpriseURLs(baseURL, baseURL)
	return client
}

func TestResolveVersionLatest(t *testing.T) {
	ghClient := setupTestServer(t)
	c, err := newWithClients(ghClient, http.DefaultClient, "testowner", "{{.Name}}-linux-amd64")
	if err != nil {
		t.Fatal(err)
	}

	version, err := c.ResolveVersion(context.Background(), "", "mytool", "latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "v2.0.0" {
		t.Errorf("version = %q, want %q", version, "v2.0.0")
	}
}

func TestResolveVersionExplicit(t *testing.T) {
	ghClient := setupTestServer(t)
	c, err := newWithClients(ghClient, http.DefaultClient, "testowner", "{{.Name}}-linux-amd64")
	if err != nil {
		t.Fatal(err)
	}

	version, err := c.ResolveVersion(context.Background(), "", "mytool", "v1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "v1.0.0" {
		t.Errorf("version = %q, want %q", version, "v1.0.0")
	}
}

func TestDownload(t *testing.T) {
	ghClient := setupTestServer(t)
	c, err := newWithClients(ghClient, &http.Client{}, "testowner", "{{.Name}}-linux-amd64")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := c.Download(context.Background(), "", "mytool", "v1.0.0", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading downloaded asset: %v", err)
	}
	if string(data) != "binary-content" {
		t.Errorf("content = %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&0111 == 0 {
		t.Error("downloaded asset should be executable")
	}
}

func TestDownloadNoMatchingAsset(t *testing.T) {
	ghClient := setupTestServer(t)
	c, err := newWithClients(ghClient, &http.Client{}, "testowner", "{{.Name}}-windows-amd64.exe")
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Download(context.Background(), "", "mytool", "v1.0.0", t.TempDir())
	if err == nil {
		t.Fatal("expected an error for a missing asset")
	}
}
