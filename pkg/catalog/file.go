package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/hashicorp/go-getter"
	v1 "github.com/il2horusteam/dsget/pkg/api/v1"
	"github.com/il2horusteam/dsget/pkg/envutil"
	"github.com/il2horusteam/dsget/pkg/version"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// FromPath loads a catalog document from a local path or a remote
// URI. Remote documents are fetched into a temporary file first.
func FromPath(ctx context.Context, path string) (*Catalog, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("catalog", path)
	if !strings.Contains(path, "://") {
		return FromFile(ctx, path)
	}
	dst := fmt.Sprintf("%s/%s-catalog%s", os.TempDir(), uuid.NewString(), filepath.Ext(path))
	log.V(1).Info("downloading catalog", "dst", dst)
	client := &getter.Client{
		Ctx:             ctx,
		Src:             path,
		Dst:             dst,
		Mode:            getter.ClientModeFile,
		DisableSymlinks: true,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("downloading catalog: %w", err)
	}
	cat, err := FromFile(ctx, dst)
	if err != nil {
		return nil, err
	}
	cat.Source = path
	return cat, nil
}

// FromFile reads a catalog document (yaml or json) into a catalog.
// Artifact URLs may carry ${VAR} references, which are expanded here.
// A single malformed version string poisons the whole document.
func FromFile(ctx context.Context, path string) (*Catalog, error) {
	log := logr.FromContextOrDiscard(ctx)
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		log.Error(err, "failed to open catalog file")
		return nil, err
	}
	defer f.Close()

	var doc v1.Catalog
	if err := yaml.NewYAMLOrJSONDecoder(f, 4).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	cat := &Catalog{Source: path}
	for _, a := range doc.Spec.Artifacts {
		v, err := version.Parse(a.Version)
		if err != nil {
			return nil, fmt.Errorf("reading catalog artifact: %w", err)
		}
		switch a.Kind {
		case v1.ArtifactZip, v1.ArtifactExe:
		default:
			return nil, fmt.Errorf("unknown artifact kind: %s", a.Kind)
		}
		name := AssetName(v, a.Kind)
		if a.URL == "" {
			return nil, fmt.Errorf("artifact %s is missing a url", name)
		}
		cat.Releases = append(cat.Releases, Release{
			Version:     v,
			Kind:        a.Kind,
			Name:        name,
			URL:         envutil.ExpandEnv(a.URL),
			MD5:         a.MD5,
			ChecksumURL: envutil.ExpandEnv(a.MD5URL),
			Size:        a.Size,
		})
		cat.Versions = append(cat.Versions, v)
	}
	cat.sort()
	return cat, nil
}
