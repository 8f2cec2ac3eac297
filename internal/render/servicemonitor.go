package render

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/naming"
)

// ServiceMonitor builds the Prometheus Operator scrape configuration.
// The type lives outside the core API, so it is rendered as an
// unstructured object. Returns nil when monitoring is disabled.
func ServiceMonitor(cfg *config.Config) *unstructured.Unstructured {
	if !cfg.ServiceMonitor.On() {
		return nil
	}

	metadata := map[string]any{
		"name":      naming.Release(cfg.Name),
		"namespace": cfg.Namespace,
		"labels":    toAnyMap(mergeMaps(Labels(cfg), cfg.ServiceMonitor.Labels)),
	}
	if len(cfg.Annotations) > 0 {
		metadata["annotations"] = toAnyMap(cfg.Annotations)
	}

	endpoint := map[string]any{
		"port":     cfg.MetricsPortName(),
		"path":     cfg.ServiceMonitor.Path,
		"interval": cfg.ServiceMonitor.Interval,
	}

	return &unstructured.Unstructured{
		Object: map[string]any{
			"apiVersion": "monitoring.coreos.com/v1",
			"kind":       "ServiceMonitor",
			"metadata":   metadata,
			"spec": map[string]any{
				"selector": map[string]any{
					"matchLabels": toAnyMap(SelectorLabels(cfg)),
				},
				"namespaceSelector": map[string]any{
					"matchNames": []any{cfg.Namespace},
				},
				"endpoints": []any{endpoint},
			},
		},
	}
}

// toAnyMap widens a string map to the value types unstructured objects
// expect.
func toAnyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
