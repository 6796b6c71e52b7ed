package lockfile

import (
	"fmt"
	"strings"

	v1 "github.com/il2horusteam/dsget/pkg/api/v1"
)

const integrityPrefix = "md5:"

type Lock struct {
	Name            string              `json:"name"`
	LockfileVersion int                 `json:"lockfileVersion"`
	Artifacts       map[string]Artifact `json:"artifacts"`
}

type Artifact struct {
	Name      string          `json:"-"`
	Kind      v1.ArtifactKind `json:"kind"`
	Version   string          `json:"version"`
	Resolved  string          `json:"resolved"`
	Integrity string          `json:"integrity"`
	Size      int64           `json:"size,omitempty"`
}

// Integrity formats an md5 hex digest as a lock integrity string.
func Integrity(digest string) string {
	return integrityPrefix + digest
}

// Digest extracts the hex digest from the artifact integrity string.
func (a Artifact) Digest() (string, error) {
	d, ok := strings.CutPrefix(a.Integrity, integrityPrefix)
	if !ok {
		return "", fmt.Errorf("unsupported integrity format: %s", a.Integrity)
	}
	return d, nil
}
