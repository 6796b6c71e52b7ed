package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/il2horusteam/dsget/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))
	t.Setenv("PATCH_MIRROR", "https://mirror.example.org/il2")

	cat, err := FromFile(ctx, "./testdata/catalog.yaml")
	require.NoError(t, err)

	// canonical order: ascending version, zip before exe
	assert.Equal(t, []string{
		"server-4.10.1.zip",
		"server-4.12.2.zip",
		"server-4.12.2.exe",
	}, cat.Names())

	// env references are expanded
	assert.Equal(t, "https://mirror.example.org/il2/server-4.10.1.zip", cat.Releases[0].URL)
	assert.Equal(t, "11e407e5e5f27d44e0b64e035f2cbcad", cat.Releases[0].MD5)
	assert.Equal(t, "https://example.org/server-4.12.2.exe.md5", cat.Releases[2].ChecksumURL)
	assert.EqualValues(t, 2097152, cat.Releases[1].Size)

	require.Len(t, cat.Versions, 2)
	assert.Equal(t, "4.10.1", cat.Versions[0].String())
	assert.Equal(t, "4.12.2", cat.Versions[1].String())
}

func TestFromFile_Invalid(t *testing.T) {
	var cases = []struct {
		name string
		doc  string
	}{
		{
			"malformed version",
			`{"spec": {"artifacts": [{"version": "4.x", "kind": "zip", "url": "https://example.org/a.zip"}]}}`,
		},
		{
			"unknown kind",
			`{"spec": {"artifacts": [{"version": "4.12", "kind": "rar", "url": "https://example.org/a.rar"}]}}`,
		},
		{
			"missing url",
			`{"spec": {"artifacts": [{"version": "4.12", "kind": "zip"}]}}`,
		},
	}

	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0644))

			_, err := FromFile(ctx, path)
			assert.Error(t, err)
		})
	}
}

func TestFromFile_MalformedVersionIsFatal(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"spec": {"artifacts": [
		{"version": "4.12", "kind": "zip", "url": "https://example.org/server-4.12.zip"},
		{"version": "not.a.version", "kind": "zip", "url": "https://example.org/broken.zip"}
	]}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := FromFile(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, version.ErrMalformedVersion)
}

func TestFromPath(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))
	t.Setenv("PATCH_MIRROR", "https://mirror.example.org/il2")

	srv := httptest.NewServer(http.FileServer(http.Dir("testdata")))
	defer srv.Close()

	// remote documents are fetched before parsing
	cat, err := FromPath(ctx, srv.URL+"/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/catalog.yaml", cat.Source)
	assert.Len(t, cat.Releases, 3)

	// local paths are read directly
	cat, err = FromPath(ctx, "./testdata/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, "./testdata/catalog.yaml", cat.Source)
	assert.Len(t, cat.Releases, 3)
}
