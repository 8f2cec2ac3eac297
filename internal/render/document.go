package render

import (
	"bytes"
	"fmt"
	"strings"
)

// Document is a single rendered Kubernetes object together with its
// encoded YAML form.
type Document struct {
	// Kind is the Kubernetes kind, e.g. "Deployment".
	Kind string

	// Name is the object's metadata.name.
	Name string

	// Object is the typed (or unstructured) API object.
	Object any

	// Bytes is the canonical YAML encoding of Object.
	Bytes []byte
}

// FileName returns the file name used when writing the document to a
// directory, e.g. "deployment-web.yaml".
func (d Document) FileName() string {
	return fmt.Sprintf("%s-%s.yaml", strings.ToLower(d.Kind), d.Name)
}

// Manifest is the complete rendered output for one release. Documents
// are ordered for sequential application: namespaced prerequisites
// such as ServiceAccounts and ConfigMaps come before the workloads
// that consume them.
type Manifest struct {
	// Release is the release name the manifest was rendered for.
	Release string

	// Namespace is the target namespace of all documents.
	Namespace string

	// Documents holds the rendered objects in apply order.
	Documents []Document
}

// Combined returns all documents joined into a single multi-document
// YAML stream separated by "---" markers.
func (m *Manifest) Combined() []byte {
	parts := make([][]byte, 0, len(m.Documents))
	for _, doc := range m.Documents {
		parts = append(parts, bytes.TrimSpace(doc.Bytes))
	}
	out := bytes.Join(parts, []byte("\n---\n"))
	return append(out, '\n')
}

// Find returns the document with the given kind and name, or nil when
// the manifest does not contain it.
func (m *Manifest) Find(kind, name string) *Document {
	for i := range m.Documents {
		if m.Documents[i].Kind == kind && m.Documents[i].Name == name {
			return &m.Documents[i]
		}
	}
	return nil
}

// ByKind returns all documents of the given kind in manifest order.
func (m *Manifest) ByKind(kind string) []*Document {
	var docs []*Document
	for i := range m.Documents {
		if m.Documents[i].Kind == kind {
			docs = append(docs, &m.Documents[i])
		}
	}
	return docs
}
