package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/go-github/v33/github"
	v1 "github.com/il2horusteam/dsget/pkg/api/v1"
	"github.com/il2horusteam/dsget/pkg/version"
)

// FromGitHub collects the server artifacts and their md5 sidecars
// from every release of a GitHub repository. Release tags are the
// patch versions; a tag without usable artifacts still counts as a
// known version.
func FromGitHub(ctx context.Context, client *github.Client, owner, repo string) (*Catalog, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("owner", owner, "repo", repo)
	log.V(1).Info("listing releases")

	var all []*github.RepositoryRelease
	opts := &github.ListOptions{PerPage: 100}
	for {
		releases, resp, err := client.Repositories.ListReleases(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing releases: %w", err)
		}
		all = append(all, releases...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	log.V(1).Info("collected releases", "count", len(all))

	cat := &Catalog{Source: fmt.Sprintf("%s/%s", owner, repo)}
	for _, rel := range all {
		v, err := version.Parse(rel.GetTagName())
		if err != nil {
			return nil, fmt.Errorf("reading release tag: %w", err)
		}
		cat.Versions = append(cat.Versions, v)

		// sidecars sit next to the artifact they describe
		sidecars := map[string]string{}
		for _, a := range rel.Assets {
			if name, ok := strings.CutSuffix(a.GetName(), ".md5"); ok {
				sidecars[name] = a.GetBrowserDownloadURL()
			}
		}
		for _, a := range rel.Assets {
			var kind v1.ArtifactKind
			switch filepath.Ext(a.GetName()) {
			case ".zip":
				kind = v1.ArtifactZip
			case ".exe":
				kind = v1.ArtifactExe
			default:
				continue
			}
			if a.GetName() != AssetName(v, kind) {
				log.V(2).Info("skipping unrelated asset", "name", a.GetName())
				continue
			}
			cat.Releases = append(cat.Releases, Release{
				Version:     v,
				Kind:        kind,
				Name:        a.GetName(),
				URL:         a.GetBrowserDownloadURL(),
				ChecksumURL: sidecars[a.GetName()],
				Size:        int64(a.GetSize()),
			})
		}
	}
	cat.sort()
	return cat, nil
}
