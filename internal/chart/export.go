// Package chart packages rendered manifest sets as Helm chart archives.
// The chart templates reproduce the rendered documents byte for byte, so
// installing the archive produces exactly what `webstamp render` prints.
package chart

import (
	"bytes"
	"fmt"

	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chartutil"
	"sigs.k8s.io/yaml"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/render"
)

const valuesFileName = "values.yaml"

// escapeActions rewrites template action markers in rendered content so
// Helm's engine emits them literally. User-supplied values (config file
// bodies, env values, annotations) may legitimately contain "{{"; a bare
// "}}" never opens an action and needs no escaping.
func escapeActions(data []byte) []byte {
	return bytes.ReplaceAll(data, []byte("{{"), []byte(`{{"{{"}}`))
}

// Export builds an in-memory Helm chart from a rendered manifest. The
// templates carry no directives beyond the marker escapes; values.yaml
// records the effective configuration for operators inspecting the
// archive.
func Export(cfg *config.Config, m *render.Manifest) (*chart.Chart, error) {
	values, err := cfg.ToYAML()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize values: %w", err)
	}

	// loader.Load parses values.yaml the same way, so a saved and
	// reloaded chart carries identical Values.
	var parsed map[string]any
	if err := yaml.Unmarshal(values, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse values: %w", err)
	}

	ch := &chart.Chart{
		Metadata: &chart.Metadata{
			APIVersion:  chart.APIVersionV2,
			Name:        cfg.Name,
			Version:     cfg.Version,
			AppVersion:  cfg.AppVersion(),
			Description: fmt.Sprintf("Kubernetes manifest set for %s", cfg.Name),
			Type:        "application",
		},
		Values: parsed,
		Raw:    []*chart.File{{Name: valuesFileName, Data: values}},
	}
	for _, doc := range m.Documents {
		ch.Templates = append(ch.Templates, &chart.File{
			Name: "templates/" + doc.FileName(),
			Data: escapeActions(doc.Bytes),
		})
	}
	return ch, nil
}

// Save writes the chart as a gzipped tar archive into dir and returns the
// archive path, named {name}-{version}.tgz.
func Save(ch *chart.Chart, dir string) (string, error) {
	path, err := chartutil.Save(ch, dir)
	if err != nil {
		return "", fmt.Errorf("failed to package chart: %w", err)
	}
	return path, nil
}
