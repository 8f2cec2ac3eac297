package render

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/webstamp/internal/config"
)

// ConfigMap builds the release ConfigMap. Env-style literals and mounted
// file content share one object; the Deployment projects them apart via
// configMapKeyRef env vars and volume items. The document renders even
// when the configuration carries neither, so the checksum annotation
// always tracks it.
func ConfigMap(cfg *config.Config) *corev1.ConfigMap {
	var data map[string]string
	if !cfg.Config.Empty() {
		data = make(map[string]string, len(cfg.Config.Data)+len(cfg.Config.Files))
		for k, v := range cfg.Config.Data {
			data[k] = v
		}
		for k, v := range cfg.Config.Files {
			data[k] = v
		}
	}

	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: objectMeta(cfg),
		Data:       data,
	}
}
