package render

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/naming"
)

// objectMeta returns the standard metadata shared by all release
// resources named after the release itself.
func objectMeta(cfg *config.Config) metav1.ObjectMeta {
	return namedMeta(cfg, naming.Release(cfg.Name))
}

// namedMeta returns standard metadata with an explicit name, for
// resources that carry a suffix.
func namedMeta(cfg *config.Config, name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:        name,
		Namespace:   cfg.Namespace,
		Labels:      Labels(cfg),
		Annotations: mergeMaps(nil, cfg.Annotations),
	}
}

// mergeMaps copies base and overlays extra on top. Returns nil when both
// are empty so omitempty drops the field from the encoded output.
func mergeMaps(base, extra map[string]string) map[string]string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
