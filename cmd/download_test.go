package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/il2horusteam/dsget/pkg/verspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBody    = "patch data\n"
	testDigest  = "6e40430325ff2d37ef87256b12537d42"
	testSidecar = testDigest + " *server-4.12.zip\n"
)

// writeCatalog points a single-artifact catalog at a test server.
func writeCatalog(t *testing.T, baseURL string) string {
	doc := fmt.Sprintf(`apiVersion: dsget.il2horusteam.github.com/v1
kind: Catalog
metadata:
  name: test
spec:
  artifacts:
    - version: "4.12"
      kind: zip
      url: %s/dl/server-4.12.zip
      md5url: %s/dl/server-4.12.zip.md5
`, baseURL, baseURL)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func newArtifactServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/dl/server-4.12.zip", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testBody))
	})
	mux.HandleFunc("/dl/server-4.12.zip.md5", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testSidecar))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// the command tree is package state, so each test spells out every
// flag it depends on rather than trusting defaults from earlier runs.
func TestDownload(t *testing.T) {
	srv := newArtifactServer(t)
	catalogPath := writeCatalog(t, srv.URL)

	outputDir := filepath.Join(t.TempDir(), "patches")
	cacheDir := filepath.Join(t.TempDir(), "cache")

	command.SetArgs([]string{
		"download",
		"--catalog", catalogPath,
		"--output-dir", outputDir,
		"--cache-dir", cacheDir,
		"--no-exe",
	})
	require.NoError(t, command.Execute())

	data, err := os.ReadFile(filepath.Join(outputDir, "server-4.12.zip"))
	require.NoError(t, err)
	assert.Equal(t, testBody, string(data))

	// the fetched sidecar is replayed verbatim next to the artifact
	sidecar, err := os.ReadFile(filepath.Join(outputDir, "server-4.12.zip.md5"))
	require.NoError(t, err)
	assert.Equal(t, testSidecar, string(sidecar))
}

func TestDownload_BothKindsDisabled(t *testing.T) {
	command.SetArgs([]string{"download", "--no-zip", "--no-exe"})

	err := command.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, "both EXE and ZIP are disabled")
}

// a query that selects nothing is an informational outcome, not a
// failure
func TestDownload_ZeroMatch(t *testing.T) {
	srv := newArtifactServer(t)
	catalogPath := writeCatalog(t, srv.URL)

	outputDir := filepath.Join(t.TempDir(), "patches")
	cacheDir := filepath.Join(t.TempDir(), "cache")

	command.SetArgs([]string{
		"download",
		"--catalog", catalogPath,
		"--output-dir", outputDir,
		"--cache-dir", cacheDir,
		"--no-zip=false",
		"--no-exe=false",
		"--version", ">9000",
	})
	require.NoError(t, command.Execute())

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// a bad spec token must fail before the catalog is ever touched: the
// catalog path given here does not exist
func TestDownload_InvalidSpec(t *testing.T) {
	command.SetArgs([]string{
		"download",
		"--catalog", filepath.Join(t.TempDir(), "missing.yaml"),
		"--version", ">=4.x",
	})

	err := command.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, verspec.ErrInvalidConstraint)
	assert.ErrorContains(t, err, `">=4.x"`)
}
