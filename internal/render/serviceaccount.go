package render

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/webstamp/internal/config"
)

// ServiceAccount builds the pod identity. Returns nil when the release
// reuses an existing account instead of creating its own.
func ServiceAccount(cfg *config.Config) *corev1.ServiceAccount {
	if !cfg.ServiceAccount.Created() {
		return nil
	}

	meta := namedMeta(cfg, cfg.ServiceAccountName())
	meta.Annotations = mergeMaps(meta.Annotations, cfg.ServiceAccount.Annotations)

	return &corev1.ServiceAccount{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ServiceAccount",
		},
		ObjectMeta: meta,
	}
}
