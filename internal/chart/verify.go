package chart

import (
	"fmt"
	"strings"

	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/chartutil"
	"helm.sh/helm/v3/pkg/engine"

	"github.com/imamik/webstamp/internal/render"
)

// Verify loads a packaged archive, renders it through Helm's engine and
// compares the output byte for byte against the manifest it was packaged
// from. Rendering undoes the marker escapes Export applied, so packaging
// is lossless; any drift in either direction is an error.
func Verify(path string, m *render.Manifest) error {
	ch, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load chart archive: %w", err)
	}

	releaseOptions := chartutil.ReleaseOptions{
		Name:      m.Release,
		Namespace: m.Namespace,
		IsInstall: true,
	}
	valuesToRender, err := chartutil.ToRenderValues(ch, ch.Values, releaseOptions, chartutil.DefaultCapabilities)
	if err != nil {
		return fmt.Errorf("failed to prepare render values: %w", err)
	}

	eng := engine.Engine{}
	rendered, err := eng.Render(ch, valuesToRender)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	for _, doc := range m.Documents {
		key := ch.Name() + "/templates/" + doc.FileName()
		content, ok := rendered[key]
		if !ok {
			return fmt.Errorf("document %s/%s missing from the archive", doc.Kind, doc.Name)
		}
		if content != string(doc.Bytes) {
			return fmt.Errorf("document %s/%s differs from the archive", doc.Kind, doc.Name)
		}
		delete(rendered, key)
	}
	for key, content := range rendered {
		if strings.TrimSpace(content) == "" {
			continue
		}
		return fmt.Errorf("archive contains an extra template %q", key)
	}
	return nil
}
