package v1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

type ArtifactKind string

const (
	ArtifactZip ArtifactKind = "zip"
	ArtifactExe ArtifactKind = "exe"
)

type CatalogSpec struct {
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

type Artifact struct {
	Version string       `json:"version"`
	Kind    ArtifactKind `json:"kind"`
	URL     string       `json:"url"`
	MD5     string       `json:"md5,omitempty"`
	MD5URL  string       `json:"md5url,omitempty"`
	Size    int64        `json:"size,omitempty"`
}

type Catalog struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec CatalogSpec `json:"spec"`
}
